package publisher

import (
	"testing"

	"github.com/Shopify/sarama"
	saramaMetrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestNewKafkaConfig(t *testing.T) {
	reg := saramaMetrics.NewRegistry()
	cfg := NewKafkaConfig(WithClientID("go-psp-reconciliation"), WithIdempotence(3), WithMetricRegistry(reg))

	assert.Equal(t, "go-psp-reconciliation", cfg.ClientID)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 3, cfg.Producer.Retry.Max)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Same(t, reg, cfg.MetricRegistry)
	assert.NoError(t, cfg.Validate())
}
