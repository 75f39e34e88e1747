package reconciler

import (
	"fmt"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/shopspring/decimal"
)

// rateScale is the number of decimal places kept in the reconciliation rate, rounded half up.
const rateScale = 4

// Aggregate partitions outcomes into the report buckets and computes the summary.
// RunID and ProcessedAt are left for the caller.
func Aggregate(outcomes []models.MatchOutcome, window models.Window, normErrs []models.NormalizationError) models.ReconciliationReport {
	report := models.ReconciliationReport{
		StartDate:           window.Start,
		EndDate:             window.End,
		Reconciled:          []models.Reconciled{},
		Divergent:           []models.Divergent{},
		MissingInBank:       []models.MissingInBank{},
		MissingInInternal:   []models.MissingInInternal{},
		NormalizationErrors: []models.NormalizationError{},
	}
	report.NormalizationErrors = append(report.NormalizationErrors, normErrs...)

	totalVolume := decimal.Zero
	divergentVolume := decimal.Zero
	keyCollisions := 0

	for _, o := range outcomes {
		switch v := o.(type) {
		case models.Reconciled:
			report.Reconciled = append(report.Reconciled, v)
			totalVolume = totalVolume.Add(v.Internal.Amount)
		case models.Divergent:
			report.Divergent = append(report.Divergent, v)
			totalVolume = totalVolume.Add(v.Internal.Amount)
			divergentVolume = divergentVolume.Add(v.Internal.Amount)
			if v.HasKeyCollision() {
				keyCollisions++
			}
		case models.MissingInBank:
			report.MissingInBank = append(report.MissingInBank, v)
			totalVolume = totalVolume.Add(v.Internal.Amount)
		case models.MissingInInternal:
			report.MissingInInternal = append(report.MissingInInternal, v)
			totalVolume = totalVolume.Add(v.Bank.Amount)
		default:
			panic(fmt.Sprintf("reconciler: unexpected outcome %T", o))
		}
	}

	report.Summary = models.ReportSummary{
		TotalTransactions:      len(outcomes),
		ReconciledCount:        len(report.Reconciled),
		DivergentCount:         len(report.Divergent),
		MissingInBankCount:     len(report.MissingInBank),
		MissingInInternalCount: len(report.MissingInInternal),
		ExcludedCount:          len(normErrs),
		KeyCollisionCount:      keyCollisions,
		TotalVolume:            totalVolume,
		DivergentVolume:        divergentVolume,
	}
	report.Summary.ReconciliationRate = ReconciliationRate(report.Summary)

	return report
}

// ReconciliationRate is reconciled over everything the internal side expected to find.
// Bank-only records stay out of the denominator.
func ReconciliationRate(s models.ReportSummary) decimal.Decimal {
	den := s.TotalCompared()
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.ReconciledCount)).DivRound(decimal.NewFromInt(int64(den)), rateScale)
}
