package setup

import (
	"context"
	"fmt"
	"net"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/cache"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	cMetrics "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/publisher"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/repositories"

	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
)

const newRelicConnectTimeout = 15 * time.Second

// setupStatsCache returns a redis backed cache when redis is configured and a
// per-process cache otherwise. rdb is nil in the second case.
func setupStatsCache(ctx context.Context, cfg config.Config, command string, mtc cMetrics.Metrics, st *stoppers) (cache.Client[models.ReconciliationStats], *redis.Client, error) {
	if cfg.Redis.Host == "" {
		xlog.Warn(ctx, "redis is not configured, reconciliation stats are cached in memory")
		mem := cache.NewInMemoryClient[models.ReconciliationStats]()
		st.add(func(context.Context) error { mem.Close(); return nil })
		return mem, nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	st.add(func(context.Context) error { return rdb.Close() })

	if err := mtc.RegisterRedis(rdb, cfg.App.Name, command); err != nil {
		return nil, nil, fmt.Errorf("register redis metrics: %w", err)
	}

	return cache.NewRedisClient[models.ReconciliationStats](rdb), rdb, nil
}

// setupCloudStorage returns nil when no bucket is configured; runs are then not archived.
func setupCloudStorage(ctx context.Context, cfg config.Config, st *stoppers) (repositories.CloudStorageRepository, error) {
	if cfg.CloudStorageConfig.BucketName == "" {
		xlog.Warn(ctx, "cloud storage bucket is not configured, reports will not be archived")
		return nil, nil
	}

	repo, err := repositories.NewCloudStorageRepository(&cfg)
	if err != nil {
		return nil, err
	}
	st.add(func(context.Context) error { return repo.Close() })

	return repo, nil
}

// setupCompletedPublisher returns nil when no broker is configured.
func setupCompletedPublisher(ctx context.Context, cfg config.Config, command string, mtc cMetrics.Metrics, st *stoppers) (publisher.Publisher, error) {
	kafka := cfg.MessageBroker.Kafka
	if len(kafka.Brokers) == 0 {
		xlog.Warn(ctx, "kafka is not configured, completed events are not published")
		return nil, nil
	}

	opts := []publisher.Option{publisher.WithClientID(cfg.App.Name), publisher.WithIdempotence(3)}
	if kafka.EnableMetrics {
		opts = append(opts, publisher.WithMetricRegistry(mtc.SaramaRegistry(cfg.App.Name+"_"+command, time.Second)))
	}

	producer, err := publisher.NewKafkaSyncProducer(kafka.Brokers, opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	st.add(func(context.Context) error { return producer.Close() })

	return publisher.NewPublisher(producer, kafka.TopicReconciliationResult, mtc), nil
}

// setupNR only reports from production. A failed agent is logged, never fatal.
func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if !cfg.Environment().IsProduction() {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		func(c *newrelic.Config) {
			c.Logger = nrzap.Transform(xlog.Logger().Named("newrelic"))
		},
	)
	if err != nil {
		xlog.Error(ctx, "[NEWRELIC] init failed", xlog.Err(err))
		return nil
	}
	if err = app.WaitForConnection(newRelicConnectTimeout); err != nil {
		xlog.Warn(ctx, "[NEWRELIC] not connected yet", xlog.Err(err))
	}

	return app
}
