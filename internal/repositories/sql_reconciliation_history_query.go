package repositories

import (
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	sq "github.com/Masterminds/squirrel"
)

const (
	queryReconciliationHistoryCreate = `
		INSERT INTO reconciliation_history(
			run_id, start_date, end_date, status,
			reconciled_count, divergent_count, missing_in_bank_count, missing_in_internal_count, excluded_count,
			reconciliation_rate, total_volume, divergent_volume, data, archive_path, created_at
		)
		VALUES(
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW()
		)
		RETURNING id, created_at;
	`

	queryReconciliationHistoryLatestReportByWindow = `
		SELECT data
		FROM reconciliation_history
		WHERE start_date = $1 AND end_date = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1;
	`
)

var reconciliationRunColumns = []string{
	"id",
	"run_id",
	"start_date",
	"end_date",
	"status",
	"reconciled_count",
	"divergent_count",
	"missing_in_bank_count",
	"missing_in_internal_count",
	"excluded_count",
	"reconciliation_rate",
	"total_volume",
	"divergent_volume",
	"COALESCE(archive_path, '')",
	"created_at",
}

func buildGetReconciliationRunByRunIDQuery(runID string) (string, []any, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	return psql.Select(reconciliationRunColumns...).
		From("reconciliation_history").
		Where(sq.Eq{"run_id": runID}).
		Limit(1).
		ToSql()
}

func buildListReconciliationRunQuery(opts models.ReconciliationRunFilterOptions) (string, []any, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Select(reconciliationRunColumns...).From("reconciliation_history")

	if opts.StartDate != nil {
		query = query.Where(sq.GtOrEq{"start_date": opts.StartDate})
	}

	if opts.EndDate != nil {
		query = query.Where(sq.LtOrEq{"end_date": opts.EndDate})
	}

	if opts.AfterCreatedAt != nil {
		query = query.Where(sq.Lt{"created_at": opts.AfterCreatedAt})
	}

	if opts.BeforeCreatedAt != nil {
		query = query.Where(sq.Gt{"created_at": opts.BeforeCreatedAt})
	}

	if opts.AscendingOrder {
		query = query.OrderBy("created_at ASC")
	} else {
		query = query.OrderBy("created_at DESC")
	}

	if opts.Limit > 0 {
		query = query.Limit(uint64(opts.Limit))
	}

	return query.ToSql()
}
