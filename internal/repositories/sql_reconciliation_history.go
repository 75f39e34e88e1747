package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/monitoring"
)

//go:generate mockgen -source=sql_reconciliation_history.go -destination=mock/sql_reconciliation_history.go -package=mock

// ReconciliationHistoryRepository is insert only: a run is never updated or deleted.
type ReconciliationHistoryRepository interface {
	Create(ctx context.Context, report *models.ReconciliationReport, archivePath string) (*models.ReconciliationRun, error)
	// GetLatestReportByWindow returns common.ErrDataNotFound when the window was never persisted.
	GetLatestReportByWindow(ctx context.Context, window models.Window) (*models.ReconciliationReport, error)
	GetList(ctx context.Context, opts models.ReconciliationRunFilterOptions) ([]models.ReconciliationRun, error)
	GetByRunID(ctx context.Context, runID string) (*models.ReconciliationRun, error)
}

type reconciliationHistoryRepository sqlRepo

var _ ReconciliationHistoryRepository = (*reconciliationHistoryRepository)(nil)

func (r *reconciliationHistoryRepository) Create(ctx context.Context, report *models.ReconciliationReport, archivePath string) (created *models.ReconciliationRun, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.writer(ctx)

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed marshal report: %w", err)
	}

	run := models.NewReconciliationRun(report, archivePath)
	s := run.Summary
	err = db.QueryRowContext(ctx, queryReconciliationHistoryCreate,
		run.RunID,
		run.StartDate,
		run.EndDate,
		run.Status,
		s.ReconciledCount,
		s.DivergentCount,
		s.MissingInBankCount,
		s.MissingInInternalCount,
		s.ExcludedCount,
		s.ReconciliationRate,
		s.TotalVolume,
		s.DivergentVolume,
		data,
		sql.NullString{String: archivePath, Valid: archivePath != ""},
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *reconciliationHistoryRepository) GetLatestReportByWindow(ctx context.Context, window models.Window) (report *models.ReconciliationReport, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.reader(ctx)

	var data []byte
	err = db.QueryRowContext(ctx, queryReconciliationHistoryLatestReportByWindow, window.Start, window.End).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrDataNotFound
		}
		return nil, err
	}

	report = &models.ReconciliationReport{}
	if err = json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed unmarshal report: %w", err)
	}

	return report, nil
}

func (r *reconciliationHistoryRepository) GetList(ctx context.Context, opts models.ReconciliationRunFilterOptions) (result []models.ReconciliationRun, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.reader(ctx)

	query, args, err := buildListReconciliationRunQuery(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result = []models.ReconciliationRun{}
	for rows.Next() {
		var run models.ReconciliationRun
		if run, err = scanReconciliationRun(rows); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reconciliationHistoryRepository) GetByRunID(ctx context.Context, runID string) (result *models.ReconciliationRun, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.reader(ctx)

	query, args, err := buildGetReconciliationRunByRunIDQuery(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	run, err := scanReconciliationRun(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrDataNotFound
		}
		return nil, err
	}

	return &run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReconciliationRun(row rowScanner) (run models.ReconciliationRun, err error) {
	err = row.Scan(
		&run.ID,
		&run.RunID,
		&run.StartDate,
		&run.EndDate,
		&run.Status,
		&run.Summary.ReconciledCount,
		&run.Summary.DivergentCount,
		&run.Summary.MissingInBankCount,
		&run.Summary.MissingInInternalCount,
		&run.Summary.ExcludedCount,
		&run.Summary.ReconciliationRate,
		&run.Summary.TotalVolume,
		&run.Summary.DivergentVolume,
		&run.ArchivePath,
		&run.CreatedAt,
	)
	run.Summary.TotalTransactions = run.Summary.ReconciledCount + run.Summary.DivergentCount +
		run.Summary.MissingInBankCount + run.Summary.MissingInInternalCount
	return run, err
}
