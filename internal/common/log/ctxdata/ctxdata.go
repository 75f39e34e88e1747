package ctxdata

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ctxKey struct{}

const (
	HeaderCorrelationID = "X-Correlation-Id"
	HeaderRequestID     = "X-Request-Id"
	HeaderTraceContext  = "X-Cloud-Trace-Context"
	HeaderTraceParent   = "Traceparent"
)

// Data is the request scoped metadata carried through context and attached to every log entry.
type Data struct {
	CorrelationID string
	Host          string
	TraceParent   string
	Trace         string
}

type Option func(*Data)

func SetCorrelationId(id string) Option {
	return func(d *Data) {
		d.CorrelationID = id
	}
}

func SetHost(host string) Option {
	return func(d *Data) {
		d.Host = host
	}
}

func SetTraceParent(tp string) Option {
	return func(d *Data) {
		d.TraceParent = tp
	}
}

// Sets copies the data already in ctx and applies opts on top of it.
func Sets(ctx context.Context, opts ...Option) context.Context {
	d := Get(ctx)
	for _, opt := range opts {
		opt(&d)
	}
	return context.WithValue(ctx, ctxKey{}, d)
}

func Get(ctx context.Context) Data {
	if ctx == nil {
		return Data{}
	}
	d, _ := ctx.Value(ctxKey{}).(Data)
	return d
}

func GetCorrelationId(ctx context.Context) string {
	return Get(ctx).CorrelationID
}

func GetHost(ctx context.Context) string {
	return Get(ctx).Host
}

func GetTraceParent(ctx context.Context) string {
	return Get(ctx).TraceParent
}

// SetContextFromHTTP extracts correlation and trace headers from an inbound request.
// A correlation id is generated when the caller did not send one.
func SetContextFromHTTP(ctx context.Context, req *http.Request, gcpProjectID string) context.Context {
	correlationID := req.Header.Get(HeaderCorrelationID)
	if correlationID == "" {
		correlationID = req.Header.Get(HeaderRequestID)
	}
	if correlationID == "" {
		correlationID = uuid.New().String()
	}

	d := Data{
		CorrelationID: correlationID,
		Host:          req.Host,
		TraceParent:   req.Header.Get(HeaderTraceParent),
	}

	if traceHeader := req.Header.Get(HeaderTraceContext); traceHeader != "" && gcpProjectID != "" {
		traceID, _, _ := strings.Cut(traceHeader, "/")
		d.Trace = "projects/" + gcpProjectID + "/traces/" + traceID
	}

	return context.WithValue(ctx, ctxKey{}, d)
}
