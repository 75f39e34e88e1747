package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPClientPrometheusMetrics covers calls to upstream services such as the Sicoob statement endpoint.
type HTTPClientPrometheusMetrics struct {
	requestDuration *prometheus.HistogramVec
}

func newHTTPClientPrometheusMetrics(reg prometheus.Registerer) *HTTPClientPrometheusMetrics {
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "upstream_request_duration_seconds",
			Help: "Duration of upstream HTTP requests, one observation per attempt.",
			// statement fetches of a month of entries take seconds
			Buckets: prometheus.ExponentialBuckets(0.025, 2, 10),
		},
		[]string{"service", "method", "path", "status_class"},
	)

	reg.MustRegister(requestDuration)

	return &HTTPClientPrometheusMetrics{requestDuration: requestDuration}
}

func (m *HTTPClientPrometheusMetrics) Observe(service, method, path string, statusCode int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(service, method, path, statusClass(statusCode)).Observe(elapsed.Seconds())
}

// statusClass keeps label cardinality low; 0 means the request never got a response.
func statusClass(code int) string {
	if code <= 0 {
		return "none"
	}
	return fmt.Sprintf("%dxx", code/100)
}
