package reconciliation

import (
	"context"
	"testing"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/flag"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_reconciliationHandler_RunSicoobAutoReconciliation(t *testing.T) {
	testHelper := reconciliationTestHelper(t)

	date := time.Date(2025, 2, 1, 0, 0, 0, 0, common.GetLocation())

	type args struct {
		ctx  context.Context
		date time.Time
		flag flag.Job
	}
	tests := []struct {
		name    string
		args    args
		doMock  func(args args)
		wantErr bool
	}{
		{
			name: "success with date flag",
			args: args{
				ctx:  context.TODO(),
				date: date,
				flag: flag.Job{JobName: "RunSicoobAutoReconciliation", Version: "v1", Date: "2025-02-01"},
			},
			doMock: func(args args) {
				testHelper.mockReconciliationService.EXPECT().RunAutoAt(gomock.AssignableToTypeOf(args.ctx), date).
					Return(&models.ReconciliationReport{RunID: "RECON-756-1"}, nil)
			},
		},
		{
			name: "success without date uses today",
			args: args{
				ctx: context.TODO(),
			},
			doMock: func(args args) {
				testHelper.mockReconciliationService.EXPECT().RunAutoAt(gomock.AssignableToTypeOf(args.ctx), gomock.Cond(func(x any) bool {
					ref, ok := x.(time.Time)
					return ok && !ref.IsZero() && time.Since(ref) < time.Minute
				})).Return(&models.ReconciliationReport{RunID: "RECON-756-2"}, nil)
			},
		},
		{
			name: "error run",
			args: args{
				ctx:  context.TODO(),
				date: date,
			},
			doMock: func(args args) {
				testHelper.mockReconciliationService.EXPECT().RunAutoAt(gomock.AssignableToTypeOf(args.ctx), date).
					Return(nil, models.ErrSourceUnavailable)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock(tt.args)
			}

			err := testHelper.handler.RunSicoobAutoReconciliation(tt.args.ctx, tt.args.date, tt.args.flag)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func Test_reconciliationHandler_ExportSicoobReconciliation(t *testing.T) {
	testHelper := reconciliationTestHelper(t)

	date := time.Date(2025, 2, 1, 10, 30, 0, 0, common.GetLocation())
	window := models.Window{
		Start: time.Date(2025, 1, 25, 0, 0, 0, 0, common.GetLocation()),
		End:   time.Date(2025, 2, 1, 0, 0, 0, 0, common.GetLocation()),
	}

	type args struct {
		ctx  context.Context
		date time.Time
		flag flag.Job
	}
	tests := []struct {
		name    string
		args    args
		doMock  func(args args)
		wantErr bool
	}{
		{
			name: "success to given bucket",
			args: args{
				ctx:  context.TODO(),
				date: date,
				flag: flag.Job{BucketName: "reports"},
			},
			doMock: func(args args) {
				testHelper.mockReconciliationService.EXPECT().ExportToStorage(gomock.AssignableToTypeOf(args.ctx), window, "reports").
					Return("reconciliation/sicoob/conciliacao_sicoob_20250125_20250201.csv", nil)
			},
		},
		{
			name: "success to default bucket",
			args: args{
				ctx:  context.TODO(),
				date: date,
			},
			doMock: func(args args) {
				testHelper.mockReconciliationService.EXPECT().ExportToStorage(gomock.AssignableToTypeOf(args.ctx), window, "").
					Return("reconciliation/sicoob/conciliacao_sicoob_20250125_20250201.csv", nil)
			},
		},
		{
			name: "error export",
			args: args{
				ctx:  context.TODO(),
				date: date,
			},
			doMock: func(args args) {
				testHelper.mockReconciliationService.EXPECT().ExportToStorage(gomock.AssignableToTypeOf(args.ctx), window, "").
					Return("", models.ErrExport)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock(tt.args)
			}

			err := testHelper.handler.ExportSicoobReconciliation(tt.args.ctx, tt.args.date, tt.args.flag)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
