package setup

import (
	"context"
	"database/sql"
	"fmt"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/flag"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/graceful"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/idgenerator"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	cMetrics "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/sicoob"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/repositories"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services"

	"cloud.google.com/go/compute/metadata"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	_ "time/tzdata"
)

type Setup struct {
	Config           config.Config
	NewRelic         *newrelic.Application
	WriteDB          *sql.DB
	ReadDB           *sql.DB
	Cache            *redis.Client
	RepoCloudStorage repositories.CloudStorageRepository
	Service          *services.Services
	Metrics          cMetrics.Metrics
}

// stoppers collects the closers of everything Init opened. The graceful stopper runs
// them in reverse.
type stoppers []graceful.ProcessStopper

func (s *stoppers) add(fn graceful.ProcessStopper) {
	*s = append(*s, fn)
}

// Init wires the dependencies shared by the api and the worker. command names the
// binary in metric names.
func Init(command string) (*Setup, []graceful.ProcessStopper, error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	initLogger(cfg)
	st := stoppers{func(context.Context) error { xlog.Sync(); return nil }}

	if err = common.SetLocation(cfg.Reconciliation.Timezone); err != nil {
		return nil, st, fmt.Errorf("load timezone %q: %w", cfg.Reconciliation.Timezone, err)
	}

	if cfg.GcloudProjectID == "" {
		cfg.GcloudProjectID, _ = metadata.ProjectID()
		xlog.Info(ctx, "gcloud_project_id not set, using the metadata server project",
			xlog.String("project", cfg.GcloudProjectID))
	}

	mtc := cMetrics.New()

	writeDB, readDB, closeDB, err := setupPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, st, fmt.Errorf("connect database: %w", err)
	}
	st.add(closeDB)

	for _, pool := range []struct {
		role   string
		db     *sql.DB
		dbName string
	}{
		{"write", writeDB, cfg.Postgres.Write.Name},
		{"read", readDB, cfg.Postgres.Read.Name},
	} {
		name := cMetrics.FlattenName(fmt.Sprintf("%s-%s-%s", cfg.App.Name, command, pool.role))
		if err = mtc.RegisterDB(pool.db, name, pool.dbName); err != nil {
			return nil, st, fmt.Errorf("register %s database metrics: %w", pool.role, err)
		}
	}

	statsCache, rdb, err := setupStatsCache(ctx, cfg, command, mtc, &st)
	if err != nil {
		return nil, st, err
	}

	flagClient, err := flag.New(&cfg)
	if err != nil {
		return nil, st, fmt.Errorf("create flag client: %w", err)
	}
	st.add(func(context.Context) error { return flagClient.Close() })

	cloudStorageRepo, err := setupCloudStorage(ctx, cfg, &st)
	if err != nil {
		return nil, st, fmt.Errorf("connect cloud storage: %w", err)
	}

	completedPub, err := setupCompletedPublisher(ctx, cfg, command, mtc, &st)
	if err != nil {
		return nil, st, err
	}

	srv := services.New(
		cfg,
		repositories.NewSQLRepository(writeDB, readDB, cfg),
		cloudStorageRepo,
		statsCache,
		sicoob.New(cfg.Sicoob, cfg.ExponentialBackoff, mtc),
		completedPub,
		idgenerator.New(),
		flagClient,
		mtc,
	)

	return &Setup{
		Config:           cfg,
		NewRelic:         setupNR(ctx, cfg),
		WriteDB:          writeDB,
		ReadDB:           readDB,
		Cache:            rdb,
		RepoCloudStorage: cloudStorageRepo,
		Service:          srv,
		Metrics:          mtc,
	}, st, nil
}

func initLogger(cfg config.Config) {
	level := xlog.DebugLogLevel()
	switch {
	case cfg.App.LogLevel != "":
		level = xlog.LevelFromString(cfg.App.LogLevel)
	case cfg.Environment().IsDeployed():
		level = xlog.InfoLogLevel()
	}

	xlog.Init(cfg.App.Name,
		xlog.WithLogToOption(cfg.App.LogOption),
		xlog.WithLogEnvOption(cfg.App.Env),
		xlog.WithCaller(true),
		xlog.AddCallerSkip(2),
		level)
}
