package repositories

import (
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var ledgerTransactionColumns = []string{
	"transaction_id",
	"COALESCE(external_id, '')",
	"type",
	"status",
	"amount",
	"bank_code",
	"COALESCE(tx_id, '')",
	"COALESCE(end_to_end_id, '')",
	"COALESCE(nosso_numero, '')",
	"created_at",
}

// buildLedgerTransactionByWindowQuery selects the rows of the given banks created in [Start, End).
func buildLedgerTransactionByWindowQuery(window models.Window, bankCodes []string) (string, []any, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Select(ledgerTransactionColumns...).
		From("transactions").
		Where(sq.Expr("bank_code = ANY(?)", pq.Array(bankCodes))).
		Where(sq.GtOrEq{"created_at": window.Start}).
		Where(sq.Lt{"created_at": window.End}).
		OrderBy("created_at ASC", "transaction_id ASC")

	return query.ToSql()
}
