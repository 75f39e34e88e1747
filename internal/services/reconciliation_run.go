package services

import (
	"context"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

const logReconciliation = "[RECONCILIATION]"

// runTracker follows one run through its states. It is owned by a single goroutine.
type runTracker struct {
	ctx       context.Context
	runID     string
	window    models.Window
	state     models.RunState
	startTime time.Time
	metrics   *metrics.ReconciliationPrometheusMetrics
}

func newRunTracker(ctx context.Context, runID string, window models.Window, m *metrics.ReconciliationPrometheusMetrics) *runTracker {
	return &runTracker{
		ctx:       ctx,
		runID:     runID,
		window:    window,
		startTime: time.Now(),
		metrics:   m,
	}
}

func (t *runTracker) fields() []xlog.Field {
	return []xlog.Field{
		xlog.String("run_id", t.runID),
		xlog.Time("start_date", t.window.Start),
		xlog.Time("end_date", t.window.End),
		xlog.String("state", string(t.state)),
	}
}

func (t *runTracker) transition(state models.RunState) {
	from := t.state
	t.state = state
	xlog.Info(t.ctx, logReconciliation, append(t.fields(), xlog.String("from", string(from)))...)
}

// fail is only reachable while fetching.
func (t *runTracker) fail(err error) {
	t.state = models.RunStateFailed
	t.metrics.RecordRun(config.SicoobBankCode, t.startTime, t.state)
	xlog.Error(t.ctx, logReconciliation, append(t.fields(), xlog.Err(err))...)
}

func (t *runTracker) complete(report *models.ReconciliationReport) {
	t.state = models.RunStateComplete
	t.metrics.RecordRun(config.SicoobBankCode, t.startTime, t.state)
	t.metrics.RecordReport(config.SicoobBankCode, report)

	s := report.Summary
	xlog.Info(t.ctx, logReconciliation, append(t.fields(),
		xlog.Int("total", s.TotalTransactions),
		xlog.Int("reconciled", s.ReconciledCount),
		xlog.Int("divergent", s.DivergentCount),
		xlog.Int("missing_in_bank", s.MissingInBankCount),
		xlog.Int("missing_in_internal", s.MissingInInternalCount),
		xlog.Int("excluded", s.ExcludedCount),
		xlog.String("rate", s.ReconciliationRate.String()),
		xlog.Duration("elapsed", time.Since(t.startTime)),
	)...)
}
