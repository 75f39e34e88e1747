package reconciler

import (
	"testing"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReconciliationRate(t *testing.T) {
	tests := []struct {
		name    string
		summary models.ReportSummary
		want    string
	}{
		{
			name:    "nothing compared",
			summary: models.ReportSummary{MissingInInternalCount: 4},
			want:    "0",
		},
		{
			name:    "all reconciled",
			summary: models.ReportSummary{ReconciledCount: 3},
			want:    "1",
		},
		{
			name:    "bank only records are not in the denominator",
			summary: models.ReportSummary{ReconciledCount: 1, DivergentCount: 1, MissingInInternalCount: 10},
			want:    "0.5",
		},
		{
			name:    "rounded to four places",
			summary: models.ReportSummary{ReconciledCount: 2, DivergentCount: 1},
			want:    "0.6667",
		},
		{
			name:    "missing in bank counts against the rate",
			summary: models.ReportSummary{ReconciledCount: 1, MissingInBankCount: 3},
			want:    "0.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconciliationRate(tt.summary)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestReconciliationRate_Scale(t *testing.T) {
	tests := map[string]models.ReportSummary{
		"0.1667": {ReconciledCount: 1, DivergentCount: 5},
		"0.3333": {ReconciledCount: 1, MissingInBankCount: 2},
		"0.9999": {ReconciledCount: 9999, DivergentCount: 1},
		"0.0001": {ReconciledCount: 1, MissingInBankCount: 9999},
	}

	for want, summary := range tests {
		got := ReconciliationRate(summary)
		assert.Equal(t, want, got.StringFixed(rateScale))
		assert.GreaterOrEqual(t, got.Exponent(), int32(-rateScale), "%s keeps more than %d places", got, rateScale)
	}
}

func TestAggregate_KeyCollisions(t *testing.T) {
	internal := models.ReconcilableRecord{Origin: models.OriginInternal, Type: models.TransactionTypePix, Amount: decimal.NewFromInt(1)}
	bank := models.ReconcilableRecord{Origin: models.OriginBank, Type: models.TransactionTypeBoleto, Amount: decimal.NewFromInt(1)}

	report := Aggregate([]models.MatchOutcome{
		models.Divergent{Internal: internal, Bank: bank, Reasons: []models.DivergenceReason{{Kind: models.DivergenceTypeMismatch}}},
		models.Divergent{Internal: internal, Bank: internal, Reasons: []models.DivergenceReason{{Kind: models.DivergenceStatusMismatch}}},
	}, testWindow(), nil)

	assert.Equal(t, 2, report.Summary.DivergentCount)
	assert.Equal(t, 1, report.Summary.KeyCollisionCount)
	assert.Equal(t, testWindow().Start, report.StartDate)
	assert.Equal(t, testWindow().End, report.EndDate)
	assert.NotNil(t, report.NormalizationErrors)
}
