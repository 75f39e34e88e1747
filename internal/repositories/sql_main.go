package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
)

//go:generate mockgen -source=sql_main.go -destination=mock/sql_main.go -package=mock

type sqlRepo struct {
	r *Repository
}

type Repository struct {
	dbWrite *sql.DB
	dbRead  *sql.DB
	config  config.Config
	common  sqlRepo

	ltr *ledgerTransactionRepository
	rhr *reconciliationHistoryRepository
}

func NewSQLRepository(
	dbWrite *sql.DB,
	dbRead *sql.DB,
	cfg config.Config,
) *Repository {
	rtx := &Repository{
		dbWrite: dbWrite,
		dbRead:  dbRead,
		config:  cfg,
	}
	rtx.common.r = rtx
	rtx.ltr = (*ledgerTransactionRepository)(&rtx.common)
	rtx.rhr = (*reconciliationHistoryRepository)(&rtx.common)

	return rtx
}

type SQLRepository interface {
	Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) error
	GetLedgerTransactionRepository() LedgerTransactionRepository
	GetReconciliationHistoryRepository() ReconciliationHistoryRepository
}

var _ SQLRepository = (*Repository)(nil)

// Atomic runs steps in one write transaction. Repositories obtained from r inside steps
// use that transaction; a nested Atomic joins it. A panic in steps rolls back and is
// re-raised.
func (r *Repository) Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return steps(ctx, r)
	}

	tx, err := r.dbWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	started := time.Now()

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			xlog.Error(ctx, "[DATABASE.TRANSACTION.PANIC]", xlog.Any("panic", p))
			panic(p)
		}
		err = endTx(ctx, tx, err, started)
	}()

	return steps(withTx(ctx, tx), r)
}

// endTx commits when stepsErr is nil and rolls back otherwise.
func endTx(ctx context.Context, tx *sql.Tx, stepsErr error, started time.Time) error {
	elapsed := xlog.Duration("elapsed", time.Since(started))

	if stepsErr != nil {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			stepsErr = fmt.Errorf("%w (rollback: %v)", stepsErr, err)
		}
		xlog.Warn(ctx, "[DATABASE.TRANSACTION.ROLLBACK]", elapsed, xlog.Err(stepsErr))
		return stepsErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	xlog.Debug(ctx, "[DATABASE.TRANSACTION.COMMIT]", elapsed)
	return nil
}

func (r *Repository) GetLedgerTransactionRepository() LedgerTransactionRepository {
	return r.ltr
}

func (r *Repository) GetReconciliationHistoryRepository() ReconciliationHistoryRepository {
	return r.rhr
}
