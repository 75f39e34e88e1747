package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PublisherPrometheusMetrics tracks reconciliation result events sent to kafka.
type PublisherPrometheusMetrics struct {
	publishDuration *prometheus.HistogramVec
	published       *prometheus.CounterVec
}

func newPublisherPrometheusMetrics(reg prometheus.Registerer) *PublisherPrometheusMetrics {
	m := &PublisherPrometheusMetrics{
		publishDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "event_publish_duration_seconds",
				Help:    "Duration of a synchronous kafka publish.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"topic"},
		),
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "events_published_total",
				Help: "Events handed to kafka, by outcome.",
			},
			[]string{"topic", "outcome"},
		),
	}

	reg.MustRegister(m.publishDuration, m.published)

	return m
}

func (m *PublisherPrometheusMetrics) ObservePublish(topic string, started time.Time, err error) {
	m.publishDuration.WithLabelValues(topic).Observe(time.Since(started).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.published.WithLabelValues(topic, outcome).Inc()
}
