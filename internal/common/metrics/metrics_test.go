package metrics

import (
	"errors"
	"testing"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFlattenName(t *testing.T) {
	assert.Equal(t, "go_psp_reconciliation", FlattenName("go-psp-reconciliation"))
	assert.Equal(t, "a_b_c_d_e_f", FlattenName("a b.c-d=e/f"))
	assert.Equal(t, "app_cache", BuildFQName("app", "cache"))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(200))
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, "none", statusClass(0))
}

func TestPublisherPrometheusMetrics_ObservePublish(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry()).GetPublisherPrometheus()

	m.ObservePublish("reconciliation.completed", time.Now(), nil)
	m.ObservePublish("reconciliation.completed", time.Now(), errors.New("broker down"))
	m.ObservePublish("reconciliation.completed", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.published.WithLabelValues("reconciliation.completed", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.published.WithLabelValues("reconciliation.completed", "error")))
}

func TestReconciliationPrometheusMetrics_RecordReport(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry()).GetReconciliationPrometheus()

	m.RecordReport("756", &models.ReconciliationReport{
		Summary: models.ReportSummary{ReconciledCount: 3, DivergentCount: 1},
		NormalizationErrors: []models.NormalizationError{
			{Origin: models.OriginBank},
			{Origin: models.OriginBank},
		},
	})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.outcomes.WithLabelValues("756", "RECONCILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("756", "DIVERGENT")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.excluded.WithLabelValues("756", models.OriginBank.String())))

	var nilMetrics *ReconciliationPrometheusMetrics
	assert.NotPanics(t, func() { nilMetrics.RecordReport("756", nil) })
}

func TestMetrics_SaramaRegistryIsShared(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	first := m.SaramaRegistry("go-psp-reconciliation_api", time.Hour)
	second := m.SaramaRegistry("go-psp-reconciliation-api", time.Hour)
	other := m.SaramaRegistry("go-psp-reconciliation_job", time.Hour)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}
