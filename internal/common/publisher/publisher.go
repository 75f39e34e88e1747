package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"

	"github.com/Shopify/sarama"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher.go -package=mock

const (
	logPublisher = "[PUBLISHER]"

	HeaderCorrelationID = "X-Correlation-Id"
	HeaderContentType   = "Content-Type"

	contentTypeJSON = "application/json"
)

// Publisher sends JSON events to a single topic.
type Publisher interface {
	Publish(ctx context.Context, message any, opts ...PublishOption) error
}

type publishOptions struct {
	key     string
	headers map[string]string
}

type PublishOption func(*publishOptions)

// WithKey sets the partition key.
func WithKey(key string) PublishOption {
	return func(o *publishOptions) {
		o.key = key
	}
}

// WithHeader adds one record header, overriding the defaults of the same name.
func WithHeader(name, value string) PublishOption {
	return func(o *publishOptions) {
		o.headers[name] = value
	}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.PublisherPrometheusMetrics
}

func NewPublisher(p sarama.SyncProducer, topic string, m metrics.Metrics) Publisher {
	pub := &publisher{producer: p, topic: topic}
	if m != nil {
		pub.metrics = m.GetPublisherPrometheus()
	}
	return pub
}

// Publish sends message as JSON. The correlation id of ctx travels as a header.
func (p *publisher) Publish(ctx context.Context, message any, opts ...PublishOption) (err error) {
	started := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.ObservePublish(p.topic, started, err)
		}
	}()

	o := &publishOptions{headers: map[string]string{HeaderContentType: contentTypeJSON}}
	if id := ctxdata.GetCorrelationId(ctx); id != "" {
		o.headers[HeaderCorrelationID] = id
	}
	for _, opt := range opts {
		opt(o)
	}

	msg, err := p.newMessage(message, o)
	if err != nil {
		xlog.Error(ctx, logPublisher,
			xlog.String("topic", p.topic),
			xlog.String("message", "failed encode event"),
			xlog.Err(err))
		return err
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		xlog.Error(ctx, logPublisher,
			xlog.String("topic", p.topic),
			xlog.String("key", o.key),
			xlog.String("message", "failed send event"),
			xlog.Err(err))
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	xlog.Info(ctx, logPublisher,
		xlog.String("topic", p.topic),
		xlog.String("key", o.key),
		xlog.Int64("partition", int64(partition)),
		xlog.Int64("offset", offset),
		xlog.Duration("elapsed", time.Since(started)))

	return nil
}

func (p *publisher) newMessage(message any, o *publishOptions) (*sarama.ProducerMessage, error) {
	value, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Value:   sarama.ByteEncoder(value),
		Headers: make([]sarama.RecordHeader, 0, len(o.headers)),
	}
	if o.key != "" {
		msg.Key = sarama.StringEncoder(o.key)
	}

	names := make([]string, 0, len(o.headers))
	for name := range o.headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(name), Value: []byte(o.headers[name])})
	}

	return msg, nil
}
