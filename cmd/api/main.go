package main

import (
	"context"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/cmd/setup"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/graceful"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/http"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/http/health"
)

const defaultGracefulTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	s, stoppers, err := setup.Init("api")
	if err != nil {
		timeout := defaultGracefulTimeout
		if s != nil && s.Config.App.GracefulTimeout > 0 {
			timeout = s.Config.App.GracefulTimeout
		}
		graceful.StopProcess(timeout, stoppers...)
		xlog.Fatalf(ctx, "failed to setup reconciliation api: %v", err)
	}

	checks := []health.Check{
		{Name: "postgres_write", Probe: s.WriteDB.PingContext},
		{Name: "postgres_read", Probe: s.ReadDB.PingContext},
	}
	if s.Cache != nil {
		checks = append(checks, health.Check{Name: "redis", Probe: func(ctx context.Context) error { return s.Cache.Ping(ctx).Err() }})
	}

	server := http.NewHTTPServer(s.Config, s.NewRelic, s.Service.Reconciliation, s.Metrics, checks...)

	xlog.Info(ctx, "[API] starting reconciliation api",
		xlog.String("app", s.Config.App.Name),
		xlog.Int("port", s.Config.App.HTTPPort),
		xlog.String("env", s.Config.App.Env))

	// stoppers run in reverse, so the server drains before its dependencies close
	graceful.StartProcessAtBackground(server.Start())
	graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, append(stoppers, server.Stop())...)

	xlog.Info(ctx, "[API] reconciliation api stopped")
}
