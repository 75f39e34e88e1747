package metrics

import (
	"database/sql"
	"sync"
	"time"

	prometheusmetrics "github.com/deathowl/go-metrics-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	saramaMetrics "github.com/rcrowley/go-metrics"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

type Metrics interface {
	RegisterDB(db *sql.DB, role string, dbName string) error
	RegisterRedis(client *redis.Client, serviceName, namespace string) error
	SaramaRegistry(name string, flushInterval time.Duration) saramaMetrics.Registry
	PrometheusRegisterer() prometheus.Registerer
	GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics
	GetPublisherPrometheus() *PublisherPrometheusMetrics
	GetReconciliationPrometheus() *ReconciliationPrometheusMetrics
}

type metrics struct {
	reg                   prometheus.Registerer
	httpClientMetrics     *HTTPClientPrometheusMetrics
	publisherMetrics      *PublisherPrometheusMetrics
	reconciliationMetrics *ReconciliationPrometheusMetrics

	mu             sync.Mutex
	saramaRegistry map[string]saramaMetrics.Registry
}

func New() Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer lets tests use an isolated registry.
func NewWithRegisterer(reg prometheus.Registerer) Metrics {
	return &metrics{
		reg:                   reg,
		httpClientMetrics:     newHTTPClientPrometheusMetrics(reg),
		publisherMetrics:      newPublisherPrometheusMetrics(reg),
		reconciliationMetrics: newReconciliationPrometheusMetrics(reg),
		saramaRegistry:        map[string]saramaMetrics.Registry{},
	}
}

// RegisterDB exports the pool stats of db labelled db_name="<dbName>_<role>".
func (m *metrics) RegisterDB(db *sql.DB, role string, dbName string) error {
	return m.reg.Register(collectors.NewDBStatsCollector(db, dbName+"_"+role))
}

func (m *metrics) RegisterRedis(client *redis.Client, serviceName, namespace string) error {
	return m.reg.Register(redisprometheus.NewCollector(BuildFQName(serviceName, namespace), "redis", client))
}

// SaramaRegistry bridges the producer's go-metrics registry into prometheus. One bridge
// runs per name; later calls return the same registry.
func (m *metrics) SaramaRegistry(name string, flushInterval time.Duration) saramaMetrics.Registry {
	name = FlattenName(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.saramaRegistry[name]; ok {
		return r
	}

	r := saramaMetrics.NewPrefixedRegistry(name + "_")
	provider := prometheusmetrics.NewPrometheusProvider(r, "", "", m.reg, flushInterval)
	go provider.UpdatePrometheusMetrics()
	m.saramaRegistry[name] = r

	return r
}

func (m *metrics) PrometheusRegisterer() prometheus.Registerer {
	return m.reg
}

func (m *metrics) GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics {
	return m.httpClientMetrics
}

func (m *metrics) GetPublisherPrometheus() *PublisherPrometheusMetrics {
	return m.publisherMetrics
}

func (m *metrics) GetReconciliationPrometheus() *ReconciliationPrometheusMetrics {
	return m.reconciliationMetrics
}
