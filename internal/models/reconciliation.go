package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Origin int

const (
	OriginInternal Origin = iota + 1
	OriginBank
)

func (o Origin) String() string {
	switch o {
	case OriginInternal:
		return "INTERNAL"
	case OriginBank:
		return "BANK"
	default:
		return "UNKNOWN"
	}
}

func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Origin) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "INTERNAL":
		*o = OriginInternal
	case "BANK":
		*o = OriginBank
	default:
		return fmt.Errorf("unknown origin %q", text)
	}
	return nil
}

type TransactionType string

const (
	TransactionTypePix    TransactionType = "PIX"
	TransactionTypeTed    TransactionType = "TED"
	TransactionTypeBoleto TransactionType = "BOLETO"
	TransactionTypeCrypto TransactionType = "CRIPTO"
)

// CanonicalStatus is the status vocabulary both sides are mapped to before comparison.
type CanonicalStatus string

const (
	StatusSettled   CanonicalStatus = "SETTLED"
	StatusPending   CanonicalStatus = "PENDING"
	StatusFailed    CanonicalStatus = "FAILED"
	StatusCancelled CanonicalStatus = "CANCELLED"
)

// KeyType identifies one of the correlation keys a record may carry.
type KeyType int

const (
	KeyTxID KeyType = iota
	KeyEndToEndID
	KeyNossoNumero
)

// KeyPriority is the order in which correlation keys are tried by the matcher.
var KeyPriority = [...]KeyType{KeyTxID, KeyEndToEndID, KeyNossoNumero}

func (k KeyType) String() string {
	switch k {
	case KeyTxID:
		return "txId"
	case KeyEndToEndID:
		return "endToEndId"
	case KeyNossoNumero:
		return "nossoNumero"
	default:
		return "unknown"
	}
}

// ReconcilableRecord is the normalized shape of a transaction from either source.
type ReconcilableRecord struct {
	Origin        Origin          `json:"origin"`
	TransactionID string          `json:"transactionId,omitempty"`
	ExternalID    string          `json:"externalId,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Status        CanonicalStatus `json:"status"`
	RawStatus     string          `json:"rawStatus,omitempty"`
	TxID          string          `json:"txId,omitempty"`
	EndToEndID    string          `json:"endToEndId,omitempty"`
	NossoNumero   string          `json:"nossoNumero,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`

	// Position is the index of the record in the order its source returned it.
	Position int `json:"-"`
}

func (r ReconcilableRecord) Key(k KeyType) string {
	switch k {
	case KeyTxID:
		return r.TxID
	case KeyEndToEndID:
		return r.EndToEndID
	case KeyNossoNumero:
		return r.NossoNumero
	default:
		return ""
	}
}

func (r ReconcilableRecord) HasCorrelationKey() bool {
	return r.TxID != "" || r.EndToEndID != "" || r.NossoNumero != ""
}

// Identifier returns the most specific identifier of the record, used in logs and warnings.
func (r ReconcilableRecord) Identifier() string {
	for _, v := range []string{r.TransactionID, r.ExternalID, r.TxID, r.EndToEndID, r.NossoNumero} {
		if v != "" {
			return v
		}
	}
	return fmt.Sprintf("%s#%d", r.Origin, r.Position)
}

// RunState is the lifecycle stage of a reconciliation run.
type RunState string

const (
	RunStateFetching    RunState = "FETCHING"
	RunStateNormalizing RunState = "NORMALIZING"
	RunStateMatching    RunState = "MATCHING"
	RunStateClassifying RunState = "CLASSIFYING"
	RunStateAggregating RunState = "AGGREGATING"
	RunStateComplete    RunState = "COMPLETE"
	RunStateFailed      RunState = "FAILED"
)

// Window is the half-open query interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// Contains reports whether t falls in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LastDay is the calendar day of the last instant inside the window.
func (w Window) LastDay() time.Time {
	return w.End.Add(-time.Nanosecond)
}
