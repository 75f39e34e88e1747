package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/graceful"
	commonhttp "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/http"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/http/middleware"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"
	commonmetrics "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/http/health"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services"

	v1reconciliation "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/http/v1/reconciliation"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		err := s.e.Start(s.addr)
		if err != nil && err != nethttp.ErrServerClosed {
			return err
		}
		return nil
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			xlog.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			xlog.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// Handler exposes the router, mainly for tests.
func (s *svc) Handler() nethttp.Handler {
	return s.e
}

// @title PSP RECONCILIATION API DOCUMENTATION
// @version 1.0
// @description Reconciliation of PSP transactions against bank statements.
// @host localhost:9567
// @BasePath /api
// @schemes http
func NewHTTPServer(
	conf config.Config,
	nr *newrelic.Application,
	reconciliationService services.ReconciliationService,
	metrics commonmetrics.Metrics,
	checks ...health.Check,
) *svc {
	app := echo.New()
	app.HideBanner = true
	app.HidePort = true

	m := middleware.NewMiddleware(conf)
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(
		echomiddleware.Recover(),
		echomiddleware.RequestID(),
		m.Context(),
		m.Logger(),
	)
	if nr != nil {
		app.Use(nrecho.Middleware(nr), correlationAttribute)
	}

	if !conf.Environment().IsProduction() {
		pprof.Register(app)
	}
	registerPrometheus(app, conf.App.Name, metrics.PrometheusRegisterer())

	health.New(app, checks...)
	v1reconciliation.New(app.Group("/api"), reconciliationService, m)

	app.RouteNotFound("/*", func(c echo.Context) error {
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound,
			fmt.Errorf("route '%s' does not exist in this API", c.Request().URL))
	})

	return &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}
}

// correlationAttribute tags the New Relic transaction with the request correlation id.
func correlationAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if txn := newrelic.FromContext(ctx); txn != nil {
			txn.AddAttribute("x-correlation-id", ctxdata.GetCorrelationId(ctx))
		}
		return next(c)
	}
}

// registerPrometheus serves /metrics from the gatherer behind registerer, falling back
// to the default gatherer.
func registerPrometheus(app *echo.Echo, appName string, registerer prometheus.Registerer) {
	gatherer, ok := registerer.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	app.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  commonmetrics.FlattenName(appName),
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	app.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
}
