package httpclient

import (
	"context"
	"fmt"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"

	"github.com/go-resty/resty/v2"
)

// RequestWrapper sends resty requests with uniform logging and latency metrics.
type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

// DoRequest executes method on path, relative to the client base URL. Query parameters
// belong in reqFunc so the metrics label stays bounded. A non 2xx response is returned
// without error; the caller decides what it means.
func (w *RequestWrapper) DoRequest(ctx context.Context, method, path string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	started := time.Now()
	fields := []xlog.Field{
		xlog.String("service", w.serviceName),
		xlog.String("method", method),
		xlog.String("path", path),
	}

	req := w.client.R().SetContext(ctx)
	if reqFunc != nil {
		req = reqFunc(req)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		w.observe(method, path, 0, started)
		xlog.Warn(ctx, w.logPrefix, append(fields, xlog.Err(err))...)
		return nil, fmt.Errorf("%s %s %s: %w", w.serviceName, method, path, err)
	}
	w.observe(method, path, res.StatusCode(), started)

	fields = append(fields,
		xlog.Int("status", res.StatusCode()),
		xlog.Duration("elapsed", res.Time()),
		xlog.Int("attempts", res.Request.Attempt))
	if res.IsError() {
		xlog.Warn(ctx, w.logPrefix, append(fields, xlog.String("response", string(res.Body())))...)
	} else {
		xlog.Debug(ctx, w.logPrefix, fields...)
	}

	return res, nil
}

func (w *RequestWrapper) observe(method, path string, statusCode int, started time.Time) {
	if w.metrics == nil {
		return
	}
	w.metrics.GetHTTPClientPrometheus().Observe(w.serviceName, method, path, statusCode, time.Since(started))
}
