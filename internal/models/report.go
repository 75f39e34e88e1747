package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingIdentity = errors.New("record has no identifying field")
	ErrUnknownStatus   = errors.New("unknown status")
	ErrUnknownType     = errors.New("unknown transaction type")
)

// NormalizationError describes a raw record excluded from the run.
type NormalizationError struct {
	Origin     Origin `json:"origin"`
	Position   int    `json:"position"`
	Identifier string `json:"identifier,omitempty"`
	Reason     string `json:"reason"`
	Err        error  `json:"-"`
}

func (e NormalizationError) Error() string {
	return fmt.Sprintf("%s record #%d (%s) rejected: %s", e.Origin, e.Position, e.Identifier, e.Reason)
}

func (e NormalizationError) Unwrap() error {
	return e.Err
}

// ReportSummary holds the counters and volumes of a report.
type ReportSummary struct {
	TotalTransactions      int `json:"totalTransactions"`
	ReconciledCount        int `json:"reconciledCount"`
	DivergentCount         int `json:"divergentCount"`
	MissingInBankCount     int `json:"missingInBankCount"`
	MissingInInternalCount int `json:"missingInInternalCount"`
	ExcludedCount          int `json:"excludedCount"`
	KeyCollisionCount      int `json:"keyCollisionCount"`

	// ReconciliationRate is reconciled / (reconciled + divergent + missing in bank), as a fraction
	// rounded half up to 4 decimal places (2/3 is 0.6667).
	ReconciliationRate decimal.Decimal `json:"reconciliationRate"`
	TotalVolume        decimal.Decimal `json:"totalVolume"`
	DivergentVolume    decimal.Decimal `json:"divergentVolume"`
}

// TotalCompared is the denominator of the reconciliation rate.
func (s ReportSummary) TotalCompared() int {
	return s.ReconciledCount + s.DivergentCount + s.MissingInBankCount
}

// ReconciliationReport is the immutable result of one run.
type ReconciliationReport struct {
	RunID       string    `json:"runId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	ProcessedAt time.Time `json:"processedAt"`

	Reconciled        []Reconciled        `json:"reconciledTransactions"`
	Divergent         []Divergent         `json:"divergentTransactions"`
	MissingInBank     []MissingInBank     `json:"missingInSicoob"`
	MissingInInternal []MissingInInternal `json:"missingInInternal"`

	Summary             ReportSummary        `json:"summary"`
	NormalizationErrors []NormalizationError `json:"normalizationErrors"`
}

// Outcomes returns every outcome bucket by bucket, each in processing order.
func (r *ReconciliationReport) Outcomes() []MatchOutcome {
	out := make([]MatchOutcome, 0, r.Summary.TotalTransactions)
	for _, o := range r.Reconciled {
		out = append(out, o)
	}
	for _, o := range r.Divergent {
		out = append(out, o)
	}
	for _, o := range r.MissingInBank {
		out = append(out, o)
	}
	for _, o := range r.MissingInInternal {
		out = append(out, o)
	}
	return out
}

// ReconciliationStats is the summary view of a report without record lists.
type ReconciliationStats struct {
	Period                 string          `json:"period"`
	StartDate              time.Time       `json:"startDate"`
	EndDate                time.Time       `json:"endDate"`
	TotalTransactions      int             `json:"totalTransactions"`
	ReconciledCount        int             `json:"reconciledCount"`
	DivergentCount         int             `json:"divergentCount"`
	MissingInBankCount     int             `json:"missingInBankCount"`
	MissingInInternalCount int             `json:"missingInInternalCount"`
	ExcludedCount          int             `json:"excludedCount"`
	ReconciliationRate     decimal.Decimal `json:"reconciliationRate"`
	TotalAmount            decimal.Decimal `json:"totalAmount"`
	DivergentAmount        decimal.Decimal `json:"divergentAmount"`
}

func NewReconciliationStats(days int, report *ReconciliationReport) *ReconciliationStats {
	totalAmount := decimal.Zero
	for _, o := range report.Reconciled {
		totalAmount = totalAmount.Add(o.Internal.Amount)
	}

	return &ReconciliationStats{
		Period:                 fmt.Sprintf("Últimos %d dias", days),
		StartDate:              report.StartDate,
		EndDate:                report.EndDate,
		TotalTransactions:      report.Summary.TotalTransactions,
		ReconciledCount:        report.Summary.ReconciledCount,
		DivergentCount:         report.Summary.DivergentCount,
		MissingInBankCount:     report.Summary.MissingInBankCount,
		MissingInInternalCount: report.Summary.MissingInInternalCount,
		ExcludedCount:          report.Summary.ExcludedCount,
		ReconciliationRate:     report.Summary.ReconciliationRate,
		TotalAmount:            totalAmount,
		DivergentAmount:        report.Summary.DivergentVolume,
	}
}
