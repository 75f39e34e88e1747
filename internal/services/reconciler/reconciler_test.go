package reconciler

import (
	"context"
	"os"
	"testing"
	"time"

	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/shopspring/decimal"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

var baseTime = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

func testWindow() models.Window {
	return models.Window{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func ledger(id, externalID, txID, amount, status string) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID: id,
		ExternalID:    externalID,
		Type:          "PIX",
		Status:        status,
		Amount:        decimal.RequireFromString(amount),
		BankCode:      "756",
		TxID:          txID,
		CreatedAt:     baseTime,
	}
}

func statement(txID, amount, status string, at time.Time) models.StatementTransaction {
	return models.StatementTransaction{
		TxID:        txID,
		Amount:      decimal.RequireFromString(amount),
		Type:        "PIX",
		Status:      status,
		ProcessedAt: models.StatementTime{Time: at},
	}
}

// reconcile runs the whole pipeline the way the service does.
func reconcile(internal []models.LedgerTransaction, bank []models.StatementTransaction) models.ReconciliationReport {
	ctx := context.Background()
	n := Normalize(internal, bank)
	outcomes := Match(ctx, n.Internal, BuildIndex(n.Bank), NewClassifier())
	return Aggregate(outcomes, testWindow(), n.Errors)
}
