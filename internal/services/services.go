package services

import (
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/cache"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/flag"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/idgenerator"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/publisher"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/sicoob"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/repositories"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services/reconciler"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	sqlRepo      repositories.SQLRepository
	cloudStorage repositories.CloudStorageRepository
	statsCache   cache.Client[models.ReconciliationStats]

	sicoobClient sicoob.Client
	completedPub publisher.Publisher
	idgenerator  idgenerator.Generator
	flag         flag.Client
	metrics      metrics.Metrics
	classifier   *reconciler.Classifier

	common service

	Storage        *storage
	Reconciliation *reconciliation
}

func New(
	conf config.Config,
	sqlRepo repositories.SQLRepository,
	cloudStorage repositories.CloudStorageRepository,
	statsCache cache.Client[models.ReconciliationStats],
	sicoobClient sicoob.Client,
	completedPub publisher.Publisher,
	idgenerator idgenerator.Generator,
	flag flag.Client,
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:         conf,
		sqlRepo:      sqlRepo,
		cloudStorage: cloudStorage,
		statsCache:   statsCache,
		sicoobClient: sicoobClient,
		completedPub: completedPub,
		idgenerator:  idgenerator,
		flag:         flag,
		metrics:      metrics,
		classifier:   reconciler.NewClassifier(),
	}
	srv.common.srv = srv
	srv.Storage = (*storage)(&srv.common)
	srv.Reconciliation = (*reconciliation)(&srv.common)

	return srv
}

func (srv *Services) reconciliationMetrics() *metrics.ReconciliationPrometheusMetrics {
	if srv.metrics == nil {
		return nil
	}
	return srv.metrics.GetReconciliationPrometheus()
}

func (srv *Services) isEnabled(key string) bool {
	if srv.flag == nil || key == "" {
		return false
	}
	return srv.flag.IsEnabled(key)
}
