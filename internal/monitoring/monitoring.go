package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerRepository = "repositories"
	LayerService    = "services"
	LayerDelivery   = "deliveries"
	LayerClient     = "common"
	LayerUnknown    = "unknown"
)

// layers is checked in order against the caller file path.
var layers = []string{LayerRepository, LayerService, LayerDelivery, LayerClient}

// Monitor traces one call: a New Relic segment plus a finish log carrying the duration.
type Monitor struct {
	ctx         context.Context
	segmentName string
	layer       string
	start       time.Time
	segment     *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// New starts monitoring the calling function. Without options the segment is named
// after the caller and the layer is taken from the caller's package directory.
func New(ctx context.Context, opts ...InitOption) *Monitor {
	o := initOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.segmentName == "" {
		// frames: caller, New, the function being monitored
		name, file := caller(2)
		o.segmentName = name
		if o.layer == "" {
			o.layer = layerOf(file)
		}
	}
	if o.layer == "" {
		o.layer = LayerUnknown
	}

	m := &Monitor{
		ctx:         ctx,
		layer:       o.layer,
		start:       time.Now(),
		segmentName: o.segmentName,
	}
	if m.segment = newrelic.FromContext(ctx).StartSegment(o.segmentName); m.segment != nil {
		m.segment.AddAttribute("layer", o.layer)
	}

	return m
}

// caller resolves the function name and file of the frame skip levels above caller.
func caller(skip int) (name, file string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return getSegmentName(fn.Name()), file
	}
	return "unknown", file
}

func layerOf(file string) string {
	for _, l := range layers {
		if strings.Contains(file, "/"+l+"/") {
			return l
		}
	}
	return LayerUnknown
}

// NewMiddlewareRoundTripper adds external segments for outgoing requests.
// The transaction is taken from the request context.
func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}
