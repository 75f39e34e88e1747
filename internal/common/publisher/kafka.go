package publisher

import (
	"time"

	"github.com/Shopify/sarama"
	saramaMetrics "github.com/rcrowley/go-metrics"
)

const defaultProducerTimeout = 2 * time.Second

type Option func(*sarama.Config)

// NewKafkaConfig is the producer configuration for result events; a completed run
// is published once, synchronously, and must be acknowledged by every in-sync replica.
func NewKafkaConfig(opts ...Option) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Timeout = defaultProducerTimeout
	cfg.Net.DialTimeout = defaultProducerTimeout
	cfg.Net.ReadTimeout = defaultProducerTimeout
	cfg.Net.WriteTimeout = defaultProducerTimeout

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func NewKafkaSyncProducer(brokers []string, opts ...Option) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(brokers, NewKafkaConfig(opts...))
}

func WithClientID(id string) Option {
	return func(cfg *sarama.Config) {
		cfg.ClientID = id
	}
}

// WithIdempotence stops broker-side duplicates when the producer retries a send.
func WithIdempotence(maxRetries int) Option {
	return func(cfg *sarama.Config) {
		cfg.Version = sarama.V2_1_0_0
		cfg.Producer.Idempotent = true
		cfg.Producer.Retry.Max = maxRetries
		cfg.Net.MaxOpenRequests = 1
	}
}

// WithMetricRegistry makes sarama report into reg instead of its private registry.
func WithMetricRegistry(reg saramaMetrics.Registry) Option {
	return func(cfg *sarama.Config) {
		cfg.MetricRegistry = reg
	}
}
