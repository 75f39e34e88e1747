package repositories

import (
	"context"
	"fmt"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/monitoring"
)

//go:generate mockgen -source=sql_ledger_transaction.go -destination=mock/sql_ledger_transaction.go -package=mock

type LedgerTransactionRepository interface {
	// GetByWindow lists the transactions of bankCodes created inside window, oldest first.
	GetByWindow(ctx context.Context, window models.Window, bankCodes []string) ([]models.LedgerTransaction, error)
}

type ledgerTransactionRepository sqlRepo

var _ LedgerTransactionRepository = (*ledgerTransactionRepository)(nil)

func (r *ledgerTransactionRepository) GetByWindow(ctx context.Context, window models.Window, bankCodes []string) (result []models.LedgerTransaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := r.r.reader(ctx)

	query, args, err := buildLedgerTransactionByWindowQuery(window, bankCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result = []models.LedgerTransaction{}
	for rows.Next() {
		var tx models.LedgerTransaction
		err = rows.Scan(
			&tx.TransactionID,
			&tx.ExternalID,
			&tx.Type,
			&tx.Status,
			&tx.Amount,
			&tx.BankCode,
			&tx.TxID,
			&tx.EndToEndID,
			&tx.NossoNumero,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
