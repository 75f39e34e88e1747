package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

type ReconciliationPrometheusMetrics struct {
	runDuration    *prometheus.HistogramVec
	sourceDuration *prometheus.HistogramVec
	outcomes       *prometheus.CounterVec
	excluded       *prometheus.CounterVec
}

func newReconciliationPrometheusMetrics(reg prometheus.Registerer) *ReconciliationPrometheusMetrics {
	mtc := &ReconciliationPrometheusMetrics{
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reconciliation_run_duration_seconds",
				Help:    "Duration of reconciliation runs in seconds.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"bank", "state"},
		),
		sourceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reconciliation_source_fetch_duration_seconds",
				Help:    "Duration of fetching one reconciliation source in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"source", "success"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reconciliation_outcomes_total",
				Help: "Number of reconciliation outcomes by kind.",
			},
			[]string{"bank", "kind"},
		),
		excluded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reconciliation_excluded_records_total",
				Help: "Number of records rejected during normalization by origin.",
			},
			[]string{"bank", "origin"},
		),
	}

	reg.MustRegister(mtc.runDuration, mtc.sourceDuration, mtc.outcomes, mtc.excluded)

	return mtc
}

func (m *ReconciliationPrometheusMetrics) RecordRun(bank string, startTime time.Time, state models.RunState) {
	if m == nil {
		return
	}
	m.runDuration.WithLabelValues(bank, string(state)).Observe(time.Since(startTime).Seconds())
}

func (m *ReconciliationPrometheusMetrics) RecordSource(source string, startTime time.Time, err error) {
	if m == nil {
		return
	}
	success := "true"
	if err != nil {
		success = "false"
	}
	m.sourceDuration.WithLabelValues(source, success).Observe(time.Since(startTime).Seconds())
}

func (m *ReconciliationPrometheusMetrics) RecordReport(bank string, report *models.ReconciliationReport) {
	if m == nil || report == nil {
		return
	}

	s := report.Summary
	m.outcomes.WithLabelValues(bank, models.OutcomeReconciled.String()).Add(float64(s.ReconciledCount))
	m.outcomes.WithLabelValues(bank, models.OutcomeDivergent.String()).Add(float64(s.DivergentCount))
	m.outcomes.WithLabelValues(bank, models.OutcomeMissingInBank.String()).Add(float64(s.MissingInBankCount))
	m.outcomes.WithLabelValues(bank, models.OutcomeMissingInInternal.String()).Add(float64(s.MissingInInternalCount))

	for _, e := range report.NormalizationErrors {
		m.excluded.WithLabelValues(bank, e.Origin.String()).Inc()
	}
}
