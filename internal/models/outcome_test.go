package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeKind(t *testing.T) {
	assert.Equal(t, "MISSING_IN_BANK", MissingInBank{}.Kind().String())
	assert.Equal(t, "Faltante Interno", MissingInInternal{}.Kind().Label())
	assert.Equal(t, "UNKNOWN", OutcomeKind(0).String())
	assert.Empty(t, OutcomeKind(0).Label())
}

func TestDivergent(t *testing.T) {
	d := Divergent{
		Reasons: []DivergenceReason{
			{Kind: DivergenceAmountMismatch, Internal: "100.00", Bank: "99.99"},
			{Kind: DivergenceStatusMismatch, Internal: "SETTLED", Bank: "PENDING"},
		},
	}

	assert.Equal(t, "AmountMismatch(100.00,99.99);StatusMismatch(SETTLED,PENDING)", d.ReasonText())
	assert.False(t, d.HasKeyCollision())

	d.Reasons = append(d.Reasons, DivergenceReason{Kind: DivergenceTypeMismatch, Internal: "PIX", Bank: "TED"})
	assert.True(t, d.HasKeyCollision())
}

func TestMatchOutcome_MarshalJSON(t *testing.T) {
	record := ReconcilableRecord{Origin: OriginBank, Amount: decimal.RequireFromString("10.5"), TxID: "tx-1"}

	tests := []struct {
		name       string
		outcome    MatchOutcome
		wantStatus string
		wantKeys   []string
	}{
		{name: "reconciled", outcome: Reconciled{Internal: record, Bank: record}, wantStatus: "RECONCILED", wantKeys: []string{"internalTransaction", "sicoobTransaction"}},
		{name: "divergent", outcome: Divergent{Internal: record, Bank: record}, wantStatus: "DIVERGENT", wantKeys: []string{"divergenceReason", "reasons"}},
		{name: "missing in bank", outcome: MissingInBank{Internal: record}, wantStatus: "MISSING_IN_BANK", wantKeys: []string{"internalTransaction"}},
		{name: "missing in internal", outcome: MissingInInternal{Bank: record}, wantStatus: "MISSING_IN_INTERNAL", wantKeys: []string{"sicoobTransaction"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.outcome)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tt.wantStatus, got["status"])
			for _, key := range tt.wantKeys {
				assert.Contains(t, got, key)
			}
		})
	}
}
