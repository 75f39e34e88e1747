// Package log is the structured logger of the service. It wraps zap and enriches every
// entry with the request metadata stored by ctxdata.
package log

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"
)

type (
	Field         = zap.Field
	ObjectEncoder = zapcore.ObjectEncoder
)

const (
	LogToStdout = "stdout"
	LogToStderr = "stderr"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

type options struct {
	logTo      string
	env        string
	caller     bool
	callerSkip int
	level      zapcore.Level
}

type Option func(*options)

func WithLogToOption(to string) Option {
	return func(o *options) {
		o.logTo = to
	}
}

func WithLogEnvOption(env string) Option {
	return func(o *options) {
		o.env = env
	}
}

func WithCaller(enabled bool) Option {
	return func(o *options) {
		o.caller = enabled
	}
}

func AddCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip = skip
	}
}

func DebugLogLevel() Option {
	return func(o *options) {
		o.level = zapcore.DebugLevel
	}
}

func InfoLogLevel() Option {
	return func(o *options) {
		o.level = zapcore.InfoLevel
	}
}

// LevelFromString returns the option for a textual level, defaulting to info.
func LevelFromString(level string) Option {
	return func(o *options) {
		if err := o.level.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			o.level = zapcore.InfoLevel
		}
	}
}

// Init builds the global logger. It must be called once at startup before any log call.
func Init(appName string, opts ...Option) {
	o := options{
		logTo: LogToStdout,
		level: zapcore.InfoLevel,
	}
	for _, opt := range opts {
		opt(&o)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "severity"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	sink := zapcore.Lock(os.Stdout)
	if o.logTo == LogToStderr {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.NewAtomicLevelAt(o.level))

	zapOpts := []zap.Option{
		zap.Fields(zap.String("service", appName), zap.String("env", o.env)),
	}
	if o.caller {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(o.callerSkip))
	}

	logger.Store(zap.New(core, zapOpts...))
}

// InitForTest silences logging in unit tests.
func InitForTest() {
	logger.Store(zap.NewNop())
}

// Logger exposes the underlying zap logger for integrations such as nrzap.
func Logger() *zap.Logger {
	return logger.Load()
}

func Sync() {
	_ = logger.Load().Sync()
}

func withContext(ctx context.Context, fields []Field) []Field {
	d := ctxdata.Get(ctx)
	if d.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", d.CorrelationID))
	}
	if d.Trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", d.Trace))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	logger.Load().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	logger.Load().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	logger.Load().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	logger.Load().Error(msg, withContext(ctx, fields)...)
}

func Panic(ctx context.Context, msg string, fields ...Field) {
	logger.Load().Panic(msg, withContext(ctx, fields)...)
}

func Fatal(ctx context.Context, msg string, fields ...Field) {
	logger.Load().Fatal(msg, withContext(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...any) {
	Debug(ctx, fmt.Sprintf(format, args...))
}

func Infof(ctx context.Context, format string, args ...any) {
	Info(ctx, fmt.Sprintf(format, args...))
}

func Warnf(ctx context.Context, format string, args ...any) {
	Warn(ctx, fmt.Sprintf(format, args...))
}

func Errorf(ctx context.Context, format string, args ...any) {
	Error(ctx, fmt.Sprintf(format, args...))
}

func Fatalf(ctx context.Context, format string, args ...any) {
	Fatal(ctx, fmt.Sprintf(format, args...))
}

func String(key, val string) Field { return zap.String(key, val) }
func Int(key string, val int) Field { return zap.Int(key, val) }
func Int64(key string, val int64) Field { return zap.Int64(key, val) }
func Uint(key string, val uint) Field { return zap.Uint(key, val) }
func Float64(key string, val float64) Field { return zap.Float64(key, val) }
func Bool(key string, val bool) Field { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Time(key string, val time.Time) Field { return zap.Time(key, val) }
func Any(key string, val any) Field { return zap.Any(key, val) }
func Strings(key string, val []string) Field { return zap.Strings(key, val) }
func Err(err error) Field { return zap.Error(err) }

func Object(key string, val zapcore.ObjectMarshaler) Field {
	return zap.Object(key, val)
}
