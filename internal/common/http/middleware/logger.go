package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"

	"github.com/labstack/echo/v4"
	"golang.org/x/exp/slices"
)

// maxLoggedBody caps how much of a body is kept for the access log; exports run to megabytes.
const maxLoggedBody = 4 << 10

const maskedValue = "*****"

var sensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	HeaderSecretKey,
}

var excludedLogs = []string{
	"/health",
	"/health/ready",
	"/api/reconciliation/health",
	"/metrics",
}

// cappedBuffer keeps the first maxLoggedBody bytes and drops the rest.
type cappedBuffer struct {
	bytes.Buffer
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if room := maxLoggedBody - b.Len(); room < n {
		b.truncated = true
		p = p[:max(room, 0)]
	}
	b.Buffer.Write(p)
	return n, nil
}

// teeResponseWriter copies what the handler writes into a cappedBuffer. Flush and
// Hijack reach the wrapped writer through Unwrap.
type teeResponseWriter struct {
	http.ResponseWriter
	buf *cappedBuffer
}

func (w *teeResponseWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	_, _ = w.buf.Write(p[:n])
	return n, err
}

func (w *teeResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func teeResponse(c echo.Context) *cappedBuffer {
	buf := new(cappedBuffer)
	c.Response().Writer = &teeResponseWriter{ResponseWriter: c.Response().Writer, buf: buf}
	return buf
}

// readRequestBody returns the logged prefix of the body and leaves the full body
// readable for the handler.
func readRequestBody(req *http.Request) string {
	if req.Body == nil || req.Body == http.NoBody {
		return ""
	}

	body, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))

	var logged cappedBuffer
	_, _ = logged.Write(body)
	return logged.String()
}

func maskHeaders(h http.Header) string {
	masked := h.Clone()
	for _, name := range sensitiveHeaders {
		if masked.Get(name) != "" {
			masked.Set(name, maskedValue)
		}
	}

	b, _ := json.Marshal(masked)
	return string(b)
}

func isCSV(res *echo.Response) bool {
	return strings.HasPrefix(res.Header().Get(echo.HeaderContentType), "text/csv")
}

func logLevel(status int) func(ctx context.Context, msg string, fields ...xlog.Field) {
	switch {
	case status >= http.StatusInternalServerError:
		return xlog.Error
	case status >= http.StatusMultipleChoices:
		return xlog.Warn
	default:
		return xlog.Info
	}
}

// Logger writes one access log line per request. CSV bodies are never logged.
func (m *AppMiddleware) Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if slices.Contains(excludedLogs, c.Path()) {
				return next(c)
			}

			start := time.Now()
			req := c.Request()
			reqBody := readRequestBody(req)
			resBody := teeResponse(c)

			if err := next(c); err != nil {
				c.Error(err)
			}

			res := c.Response()
			latency := time.Since(start)
			fields := []xlog.Field{
				xlog.Time("start_time", start),
				xlog.String("method", req.Method),
				xlog.String("url_path", req.URL.String()),
				xlog.String("remote_ip", c.RealIP()),
				xlog.String("request_header", maskHeaders(req.Header)),
				xlog.String("request_body", reqBody),
				xlog.Int("status", res.Status),
				xlog.Duration("latency", latency),
				xlog.Int64("response_size", res.Size),
			}
			if !isCSV(res) {
				fields = append(fields,
					xlog.String("response", resBody.String()),
					xlog.Bool("response_truncated", resBody.truncated))
			}

			msg := fmt.Sprintf("%d %s %s %s", res.Status, req.Method, req.URL.Path, latency)
			logLevel(res.Status)(c.Request().Context(), msg, fields...)

			return nil
		}
	}
}
