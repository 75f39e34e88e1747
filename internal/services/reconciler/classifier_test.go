package reconciler

import (
	"context"
	"testing"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	base := models.ReconcilableRecord{
		Type:   models.TransactionTypePix,
		Amount: decimal.RequireFromString("150.00"),
		Status: models.StatusSettled,
		TxID:   "T1",
	}

	tests := []struct {
		name        string
		bank        func(r models.ReconcilableRecord) models.ReconcilableRecord
		wantKind    models.OutcomeKind
		wantReasons string
	}{
		{
			name:     "identical",
			bank:     func(r models.ReconcilableRecord) models.ReconcilableRecord { return r },
			wantKind: models.OutcomeReconciled,
		},
		{
			name: "sub cent difference is equal",
			bank: func(r models.ReconcilableRecord) models.ReconcilableRecord {
				r.Amount = decimal.RequireFromString("150.001")
				return r
			},
			wantKind: models.OutcomeReconciled,
		},
		{
			name: "status only",
			bank: func(r models.ReconcilableRecord) models.ReconcilableRecord {
				r.Status = models.StatusPending
				return r
			},
			wantKind:    models.OutcomeDivergent,
			wantReasons: "StatusMismatch(SETTLED,PENDING)",
		},
		{
			name: "every field disagrees",
			bank: func(r models.ReconcilableRecord) models.ReconcilableRecord {
				r.Amount = decimal.RequireFromString("149.5")
				r.Status = models.StatusFailed
				r.Type = models.TransactionTypeBoleto
				return r
			},
			wantKind:    models.OutcomeDivergent,
			wantReasons: "AmountMismatch(150.00,149.50);StatusMismatch(SETTLED,FAILED);TypeMismatch(PIX,BOLETO)",
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), base, tt.bank(base))
			require.Equal(t, tt.wantKind, got.Kind())

			if tt.wantKind == models.OutcomeDivergent {
				d, ok := got.(models.Divergent)
				require.True(t, ok)
				assert.Equal(t, tt.wantReasons, d.ReasonText())
			}
		})
	}
}

func TestClassifier_ClassifyAll(t *testing.T) {
	internal := models.ReconcilableRecord{TransactionID: "trx-1", Type: models.TransactionTypePix, Status: models.StatusSettled}
	leftover := models.ReconcilableRecord{TxID: "T9"}

	got := NewClassifier().ClassifyAll(context.Background(),
		[]Correlation{{Internal: internal}, {Internal: internal, Bank: &internal}},
		[]models.ReconcilableRecord{leftover},
	)

	require.Len(t, got, 3)
	assert.Equal(t, models.MissingInBank{Internal: internal}, got[0])
	assert.Equal(t, models.OutcomeReconciled, got[1].Kind())
	assert.Equal(t, models.MissingInInternal{Bank: leftover}, got[2])
}
