package monitoring

import (
	"context"
	"errors"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	statusSuccess  = "success"
	statusCanceled = "canceled"
	statusError    = "error"
)

var messagePrefix = map[string]string{
	LayerRepository: "[REPOSITORY]",
	LayerService:    "[SERVICE]",
	LayerDelivery:   "[DELIVERY]",
	LayerClient:     "[CLIENT]",
	LayerUnknown:    "[-]",
}

type finishOptions struct {
	err    error
	fields []xlog.Field
}

type FinishOption func(*finishOptions)

// WithFinishCheckError must be evaluated when the call returns, so defer a closure:
//
//	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()
func WithFinishCheckError(err error) FinishOption {
	return func(o *finishOptions) {
		o.err = err
	}
}

func WithFinishXlogFields(fields ...xlog.Field) FinishOption {
	return func(o *finishOptions) {
		o.fields = append(o.fields, fields...)
	}
}

func finishStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, context.Canceled):
		return statusCanceled
	default:
		return statusError
	}
}

// Finish ends the segment and logs the outcome. Successful repository and client
// calls are not logged.
func (m *Monitor) Finish(opts ...FinishOption) {
	o := &finishOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if m.segment != nil {
		defer m.segment.End()
	}

	status := finishStatus(o.err)
	fields := append(o.fields,
		xlog.String("segment", m.segmentName),
		xlog.Duration("processDuration", time.Since(m.start)),
		xlog.String("status", status))
	if o.err != nil {
		fields = append(fields, xlog.Err(o.err))
	}

	prefix := messagePrefix[m.layer]
	switch status {
	case statusError:
		if m.layer == LayerService {
			newrelic.FromContext(m.ctx).NoticeError(o.err)
		}
		xlog.Warn(m.ctx, prefix, fields...)
	case statusCanceled:
		xlog.Info(m.ctx, prefix, fields...)
	default:
		if m.layer == LayerDelivery || m.layer == LayerService {
			xlog.Info(m.ctx, prefix, fields...)
		}
	}
}
