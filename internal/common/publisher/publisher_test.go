package publisher

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestPublisher_Publish(t *testing.T) {
	type payload struct {
		RunID string `json:"runId"`
	}

	t.Run("success", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Equal(t, "reconciliation.completed", msg.Topic)

			key, err := msg.Key.Encode()
			require.NoError(t, err)
			assert.Equal(t, "run-1", string(key))

			value, err := msg.Value.Encode()
			require.NoError(t, err)
			var got payload
			require.NoError(t, json.Unmarshal(value, &got))
			assert.Equal(t, "run-1", got.RunID)

			assert.Equal(t, []sarama.RecordHeader{
				{Key: []byte(HeaderContentType), Value: []byte("application/json")},
				{Key: []byte(HeaderCorrelationID), Value: []byte("corr-1")},
			}, msg.Headers)
			return nil
		})

		pub := NewPublisher(producer, "reconciliation.completed", metrics.NewWithRegisterer(prometheus.NewRegistry()))
		ctx := ctxdata.Sets(context.Background(), ctxdata.SetCorrelationId("corr-1"))

		err := pub.Publish(ctx, payload{RunID: "run-1"}, WithKey("run-1"))
		assert.NoError(t, err)
		assert.NoError(t, producer.Close())
	})

	t.Run("header option overrides correlation id", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Nil(t, msg.Key)
			require.Len(t, msg.Headers, 2)
			assert.Equal(t, "corr-2", string(msg.Headers[1].Value))
			return nil
		})

		pub := NewPublisher(producer, "reconciliation.completed", nil)
		ctx := ctxdata.Sets(context.Background(), ctxdata.SetCorrelationId("corr-1"))

		assert.NoError(t, pub.Publish(ctx, payload{RunID: "run-1"}, WithHeader(HeaderCorrelationID, "corr-2")))
		assert.NoError(t, producer.Close())
	})

	t.Run("send failure", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		pub := NewPublisher(producer, "reconciliation.completed", nil)

		err := pub.Publish(context.Background(), payload{RunID: "run-1"})
		assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		assert.ErrorContains(t, err, "reconciliation.completed")
		assert.NoError(t, producer.Close())
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)

		pub := NewPublisher(producer, "reconciliation.completed", nil)

		err := pub.Publish(context.Background(), map[string]any{"bad": make(chan int)})
		assert.Error(t, err)
		assert.NoError(t, producer.Close())
	})
}
