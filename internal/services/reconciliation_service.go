package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/cache"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/idgenerator"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/publisher"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/monitoring"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/repositories"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services/reconciler"

	"golang.org/x/sync/errgroup"
)

const (
	sourceInternal = "internal"
	sourceSicoob   = "sicoob"

	statsCacheNamespace = "reconciliation:sicoob:stats"
)

//go:generate mockgen -source=reconciliation_service.go -destination=mock/reconciliation_service.go -package=mock

type ReconciliationService interface {
	// Run reconciles the window and records it in the history.
	Run(ctx context.Context, window models.Window) (*models.ReconciliationReport, error)
	// RunAuto runs the trailing auto window ending today.
	RunAuto(ctx context.Context) (*models.ReconciliationReport, error)
	// RunAutoAt runs the trailing auto window ending on the day of reference.
	RunAutoAt(ctx context.Context, reference time.Time) (*models.ReconciliationReport, error)
	// Stats summarizes the trailing window of days without recording it. days <= 0 uses the default.
	Stats(ctx context.Context, days int) (*models.ReconciliationStats, error)
	// History returns the latest recorded report of the exact window, or re-derives it.
	History(ctx context.Context, window models.Window) (*models.ReconciliationReport, error)
	Export(ctx context.Context, window models.Window, w io.Writer) error
	// ExportToStorage uploads the window CSV to bucketName, empty meaning the configured bucket.
	ExportToStorage(ctx context.Context, window models.Window, bucketName string) (filePath string, err error)
	ListRuns(ctx context.Context, opts models.ReconciliationRunFilterOptions) ([]models.ReconciliationRun, error)
	GetRunDownloadURL(ctx context.Context, runID string) (url string, err error)
}

type reconciliation service

var _ ReconciliationService = (*reconciliation)(nil)

func (s *reconciliation) Run(ctx context.Context, window models.Window) (report *models.ReconciliationReport, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	report, err = s.derive(ctx, window)
	if err != nil {
		return nil, err
	}

	// the report is complete; side effects below are logged, never returned
	ctx = context.WithoutCancel(ctx)

	archivePath := s.archive(ctx, report)
	s.record(ctx, report, archivePath)
	s.publishCompleted(ctx, report, archivePath)

	return report, nil
}

// record appends the run to the history. A failed insert leaves the archived CSV without
// a history row, so its path is logged for the operator.
func (s *reconciliation) record(ctx context.Context, report *models.ReconciliationReport, archivePath string) {
	err := s.srv.sqlRepo.Atomic(ctx, func(ctx context.Context, r repositories.SQLRepository) error {
		_, err := r.GetReconciliationHistoryRepository().Create(ctx, report, archivePath)
		return err
	})
	if err != nil {
		xlog.Error(ctx, logReconciliation,
			xlog.String("run_id", report.RunID),
			xlog.String("archive_path", archivePath),
			xlog.String("message", "failed persist reconciliation history"),
			xlog.Err(err))
	}
}

func (s *reconciliation) RunAuto(ctx context.Context) (*models.ReconciliationReport, error) {
	return s.RunAutoAt(ctx, common.Now())
}

func (s *reconciliation) RunAutoAt(ctx context.Context, reference time.Time) (*models.ReconciliationReport, error) {
	days := s.srv.conf.Reconciliation.AutoWindowDays
	if days <= 0 {
		days = config.DefaultAutoWindowDays
	}

	return s.Run(ctx, trailingWindow(reference, days))
}

func (s *reconciliation) Stats(ctx context.Context, days int) (stats *models.ReconciliationStats, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if days <= 0 {
		days = s.srv.conf.Reconciliation.StatsWindowDays
	}
	if days <= 0 {
		days = config.DefaultStatsWindowDays
	}
	window := trailingWindow(common.Now(), days)

	ttl := s.srv.conf.Reconciliation.StatsCacheTTL
	useCache := ttl > 0 && s.srv.statsCache != nil
	key := cache.Key(statsCacheNamespace, strconv.Itoa(days), window.End.Format(common.DateFormatYYYYMMDDWithoutDash))

	if useCache {
		cached, errCache := s.srv.statsCache.Get(ctx, key)
		if errCache == nil {
			return &cached, nil
		}
		if !errors.Is(errCache, cache.ErrNotExists) {
			xlog.Warn(ctx, logReconciliation, xlog.String("key", key), xlog.Err(errCache))
		}
	}

	report, err := s.derive(ctx, window)
	if err != nil {
		return nil, err
	}
	stats = models.NewReconciliationStats(days, report)

	if useCache {
		if errCache := s.srv.statsCache.Set(ctx, key, *stats, ttl); errCache != nil {
			xlog.Warn(ctx, logReconciliation, xlog.String("key", key), xlog.Err(errCache))
		}
	}

	return stats, nil
}

func (s *reconciliation) History(ctx context.Context, window models.Window) (report *models.ReconciliationReport, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if err = validateWindow(window); err != nil {
		return nil, err
	}

	report, err = s.srv.sqlRepo.GetReconciliationHistoryRepository().GetLatestReportByWindow(ctx, window)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, common.ErrDataNotFound) {
		xlog.Warn(ctx, logReconciliation,
			xlog.String("message", "failed read history, re-deriving window"),
			xlog.Err(err))
	}

	return s.derive(ctx, window)
}

func (s *reconciliation) Export(ctx context.Context, window models.Window, w io.Writer) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	report, err := s.History(ctx, window)
	if err != nil {
		return err
	}

	return reconciler.WriteCSV(w, report)
}

func (s *reconciliation) ExportToStorage(ctx context.Context, window models.Window, bucketName string) (filePath string, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	report, err := s.History(ctx, window)
	if err != nil {
		return "", err
	}

	payload := models.CloudStoragePayload{
		Path:     s.srv.conf.CloudStorageConfig.ReportPath,
		Filename: models.ReconciliationReportFilename(window.Start, window.End),
	}

	return s.srv.Storage.UploadReport(ctx, bucketName, payload, report)
}

func (s *reconciliation) ListRuns(ctx context.Context, opts models.ReconciliationRunFilterOptions) (runs []models.ReconciliationRun, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	return s.srv.sqlRepo.GetReconciliationHistoryRepository().GetList(ctx, opts)
}

func (s *reconciliation) GetRunDownloadURL(ctx context.Context, runID string) (url string, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	run, err := s.srv.sqlRepo.GetReconciliationHistoryRepository().GetByRunID(ctx, runID)
	if err != nil {
		return "", err
	}

	if run.ArchivePath == "" {
		return "", models.ErrReportNotArchived
	}

	return s.srv.Storage.GetDownloadURL(ctx, run.ArchivePath)
}

// derive runs the pipeline without side effects.
func (s *reconciliation) derive(ctx context.Context, window models.Window) (*models.ReconciliationReport, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	runID := s.srv.idgenerator.Generate(idgenerator.PrefixRun, config.SicoobBankCode)
	tracker := newRunTracker(ctx, runID, window, s.srv.reconciliationMetrics())

	tracker.transition(models.RunStateFetching)
	ledger, statement, err := s.fetch(ctx, window)
	if err != nil {
		tracker.fail(err)
		return nil, err
	}

	// past the join the pipeline always completes
	ctx = context.WithoutCancel(ctx)
	tracker.ctx = ctx

	tracker.transition(models.RunStateNormalizing)
	normalized := reconciler.Normalize(ledger, statement)
	for _, e := range normalized.Errors {
		xlog.Warn(ctx, logReconciliation, xlog.String("run_id", runID), xlog.Err(e))
	}

	tracker.transition(models.RunStateMatching)
	idx := reconciler.BuildIndex(normalized.Bank)
	pairs, leftovers := reconciler.Correlate(normalized.Internal, idx)

	tracker.transition(models.RunStateClassifying)
	outcomes := s.srv.classifier.ClassifyAll(ctx, pairs, leftovers)

	tracker.transition(models.RunStateAggregating)
	report := reconciler.Aggregate(outcomes, window, normalized.Errors)
	report.RunID = runID
	report.ProcessedAt = common.Now()

	tracker.complete(&report)

	return &report, nil
}

// fetch reads both sources concurrently under one deadline. Any failure fails the run.
func (s *reconciliation) fetch(ctx context.Context, window models.Window) (ledger []models.LedgerTransaction, statement []models.StatementTransaction, err error) {
	timeout := s.srv.conf.Reconciliation.FetchTimeout
	if timeout <= 0 {
		timeout = config.DefaultFetchTimeout
	}

	bankCodes := s.srv.conf.Reconciliation.BankCodes
	if len(bankCodes) == 0 {
		bankCodes = []string{config.SicoobBankCode}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	m := s.srv.reconciliationMetrics()
	g, gctx := errgroup.WithContext(fetchCtx)

	g.Go(func() error {
		startTime := time.Now()
		res, err := s.srv.sqlRepo.GetLedgerTransactionRepository().GetByWindow(gctx, window, bankCodes)
		m.RecordSource(sourceInternal, startTime, err)
		if err != nil {
			return fmt.Errorf("%s: %w", sourceInternal, err)
		}
		ledger = res
		return nil
	})

	g.Go(func() error {
		startTime := time.Now()
		res, err := s.srv.sicoobClient.GetStatement(gctx, window)
		m.RecordSource(sourceSicoob, startTime, err)
		if err != nil {
			return fmt.Errorf("%s: %w", sourceSicoob, err)
		}
		statement = statementInWindow(res, window)
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", models.ErrSourceUnavailable, err)
	}

	return ledger, statement, nil
}

// archive uploads the run CSV when enabled. Failures are logged and yield an empty path.
func (s *reconciliation) archive(ctx context.Context, report *models.ReconciliationReport) string {
	if !s.srv.isEnabled(s.srv.conf.FeatureFlagKeyLookup.ArchiveReport) {
		return ""
	}

	payload := models.ReconciliationArchivePayload(s.srv.conf.CloudStorageConfig.ReportPath, report.RunID, report.StartDate, report.EndDate)
	filePath, err := s.srv.Storage.UploadReport(ctx, "", payload, report)
	if err != nil {
		xlog.Warn(ctx, logReconciliation,
			xlog.String("run_id", report.RunID),
			xlog.String("message", "failed archive report"),
			xlog.Err(err))
		return ""
	}

	return filePath
}

func (s *reconciliation) publishCompleted(ctx context.Context, report *models.ReconciliationReport, archivePath string) {
	if s.srv.completedPub == nil || !s.srv.isEnabled(s.srv.conf.FeatureFlagKeyLookup.PublishCompleted) {
		return
	}

	event := models.NewReconciliationCompletedEvent(report, archivePath)
	if err := s.srv.completedPub.Publish(ctx, event, publisher.WithKey(report.RunID)); err != nil {
		xlog.Warn(ctx, logReconciliation,
			xlog.String("run_id", report.RunID),
			xlog.String("message", "failed publish completed event"),
			xlog.Err(err))
	}
}

func validateWindow(window models.Window) error {
	if window.End.Before(window.Start) {
		return models.GetErrMap(models.ErrKeyStartDateIsAfterEndDate)
	}
	return nil
}

// trailingWindow is [today-days, today) in the business timezone.
func trailingWindow(reference time.Time, days int) models.Window {
	end := common.StartOfDay(reference)
	return models.Window{Start: end.AddDate(0, 0, -days), End: end}
}

// statementInWindow drops entries the day-granular statement returns outside the window.
// Entries without a timestamp are kept.
func statementInWindow(res *models.StatementResponse, window models.Window) []models.StatementTransaction {
	if res == nil {
		return []models.StatementTransaction{}
	}

	out := make([]models.StatementTransaction, 0, len(res.Transactions))
	for _, tx := range res.Transactions {
		if !tx.ProcessedAt.IsZero() && !window.Contains(tx.ProcessedAt.Time) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
