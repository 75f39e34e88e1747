package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"

	"github.com/shopspring/decimal"
)

// LedgerTransaction is a row of the internal transactions table.
type LedgerTransaction struct {
	TransactionID string
	ExternalID    string
	Type          string
	Status        string
	Amount        decimal.Decimal
	BankCode      string
	TxID          string
	EndToEndID    string
	NossoNumero   string
	CreatedAt     time.Time
}

// StatementTransaction is one entry of the Sicoob account statement.
type StatementTransaction struct {
	TxID        string          `json:"txId"`
	EndToEndID  string          `json:"endToEndId"`
	NossoNumero string          `json:"nossoNumero"`
	ExternalID  string          `json:"externalId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	ProcessedAt StatementTime   `json:"processedAt"`
	Description string          `json:"description"`
}

type StatementResponse struct {
	Transactions      []StatementTransaction `json:"transactions"`
	StartDate         StatementTime          `json:"startDate"`
	EndDate           StatementTime          `json:"endDate"`
	TotalTransactions int                    `json:"totalTransactions"`
}

// StatementTime accepts RFC3339 timestamps as well as the zone-less
// "2006-01-02T15:04:05" layout the Integration service emits, read in the business timezone.
type StatementTime struct {
	time.Time
}

var statementTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *StatementTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}

	for _, layout := range statementTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, common.GetLocation()); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("invalid statement time %q", s)
}

func (t StatementTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
