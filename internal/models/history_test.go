package models

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoGetListReconciliationRunRequest_ToFilterOpts(t *testing.T) {
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)
	cursor := ReconciliationRun{CreatedAt: createdAt}.GetCursor()

	tests := []struct {
		name     string
		req      DoGetListReconciliationRunRequest
		check    func(t *testing.T, opts *ReconciliationRunFilterOptions)
		wantCode string
		wantErr  bool
	}{
		{
			name: "default limit is over-fetched by one",
			req:  DoGetListReconciliationRunRequest{},
			check: func(t *testing.T, opts *ReconciliationRunFilterOptions) {
				assert.Equal(t, 11, opts.Limit)
				assert.Nil(t, opts.StartDate)
				assert.False(t, opts.AscendingOrder)
			},
		},
		{
			name: "date filter",
			req:  DoGetListReconciliationRunRequest{StartDate: "2025-01-01", EndDate: "2025-01-31", Limit: 5},
			check: func(t *testing.T, opts *ReconciliationRunFilterOptions) {
				assert.Equal(t, 6, opts.Limit)
				require.NotNil(t, opts.StartDate)
				require.NotNil(t, opts.EndDate)
				assert.Equal(t, 31, opts.EndDate.Day())
			},
		},
		{
			name: "next cursor wins over prev cursor",
			req:  DoGetListReconciliationRunRequest{NextCursor: cursor, PrevCursor: cursor},
			check: func(t *testing.T, opts *ReconciliationRunFilterOptions) {
				require.NotNil(t, opts.AfterCreatedAt)
				assert.True(t, createdAt.Equal(*opts.AfterCreatedAt))
				assert.Nil(t, opts.BeforeCreatedAt)
			},
		},
		{
			name: "prev cursor pages ascending",
			req:  DoGetListReconciliationRunRequest{PrevCursor: cursor},
			check: func(t *testing.T, opts *ReconciliationRunFilterOptions) {
				require.NotNil(t, opts.BeforeCreatedAt)
				assert.True(t, opts.AscendingOrder)
			},
		},
		{
			name:     "negative limit",
			req:      DoGetListReconciliationRunRequest{Limit: -1},
			wantCode: "LIMIT_MUST_BE_GREATER_THAN_ZERO",
		},
		{
			name:     "only one bound",
			req:      DoGetListReconciliationRunRequest{StartDate: "2025-01-01"},
			wantCode: "START_DATE_AND_END_DATE_REQUIRED",
		},
		{
			name:     "start after end",
			req:      DoGetListReconciliationRunRequest{StartDate: "2025-02-01", EndDate: "2025-01-01"},
			wantCode: "START_DATE_IS_AFTER_END_DATE",
		},
		{
			name:     "bad date",
			req:      DoGetListReconciliationRunRequest{StartDate: "2025-13-01", EndDate: "2025-01-01"},
			wantCode: "INVALID_FORMAT_DATE",
		},
		{
			name:    "cursor is not base64",
			req:     DoGetListReconciliationRunRequest{NextCursor: "%%%"},
			wantErr: true,
		},
		{
			name:    "cursor is not a timestamp",
			req:     DoGetListReconciliationRunRequest{NextCursor: base64.StdEncoding.EncodeToString([]byte("yesterday"))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.req.ToFilterOpts()
			if tt.wantCode != "" {
				var detail ErrorDetail
				require.ErrorAs(t, err, &detail)
				assert.Equal(t, tt.wantCode, detail.Code)
				return
			}
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestReconciliationRun_ToModelResponse(t *testing.T) {
	run := ReconciliationRun{
		ID:        7,
		RunID:     "run-7",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    ReconciliationRunStatusComplete,
		Summary: ReportSummary{
			ReconciledCount:    9,
			DivergentCount:     1,
			ReconciliationRate: decimal.RequireFromString("0.9"),
			TotalVolume:        decimal.RequireFromString("1500"),
			DivergentVolume:    decimal.RequireFromString("150.5"),
		},
		CreatedAt: time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC),
	}

	got := run.ToModelResponse()

	assert.Equal(t, DoGetReconciliationRunResponse{
		Kind:               "reconciliationRun",
		ID:                 "7",
		RunID:              "run-7",
		StartDate:          "2025-01-01",
		EndDate:            "2025-01-31",
		Status:             "COMPLETE",
		ReconciledCount:    9,
		DivergentCount:     1,
		ReconciliationRate: "0.9",
		TotalVolume:        "1500.00",
		DivergentVolume:    "150.50",
		Archived:           false,
		CreatedAt:          "2025-02-01 08:30:00",
	}, got)
}

func TestNewReconciliationRun(t *testing.T) {
	report := &ReconciliationReport{RunID: "run-1", Summary: ReportSummary{ExcludedCount: 2}}

	run := NewReconciliationRun(report, "bucket/path.csv")

	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, ReconciliationRunStatusComplete, run.Status)
	assert.Equal(t, 2, run.Summary.ExcludedCount)
	assert.True(t, run.ToModelResponse().Archived)
}
