package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type OutcomeKind int

const (
	OutcomeReconciled OutcomeKind = iota + 1
	OutcomeDivergent
	OutcomeMissingInBank
	OutcomeMissingInInternal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReconciled:
		return "RECONCILED"
	case OutcomeDivergent:
		return "DIVERGENT"
	case OutcomeMissingInBank:
		return "MISSING_IN_BANK"
	case OutcomeMissingInInternal:
		return "MISSING_IN_INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Label is the status text used in the exported CSV.
func (k OutcomeKind) Label() string {
	switch k {
	case OutcomeReconciled:
		return "Conciliada"
	case OutcomeDivergent:
		return "Divergente"
	case OutcomeMissingInBank:
		return "Faltante no Sicoob"
	case OutcomeMissingInInternal:
		return "Faltante Interno"
	default:
		return ""
	}
}

// MatchOutcome is implemented only by Reconciled, Divergent, MissingInBank and
// MissingInInternal. Consumers switch on the concrete type.
type MatchOutcome interface {
	Kind() OutcomeKind
	matchOutcome()
}

type Reconciled struct {
	Internal ReconcilableRecord `json:"internalTransaction"`
	Bank     ReconcilableRecord `json:"sicoobTransaction"`
}

type Divergent struct {
	Internal ReconcilableRecord `json:"internalTransaction"`
	Bank     ReconcilableRecord `json:"sicoobTransaction"`
	Reasons  []DivergenceReason `json:"reasons"`
}

type MissingInBank struct {
	Internal ReconcilableRecord `json:"internalTransaction"`
}

type MissingInInternal struct {
	Bank ReconcilableRecord `json:"sicoobTransaction"`
}

func (Reconciled) Kind() OutcomeKind { return OutcomeReconciled }
func (Divergent) Kind() OutcomeKind { return OutcomeDivergent }
func (MissingInBank) Kind() OutcomeKind { return OutcomeMissingInBank }
func (MissingInInternal) Kind() OutcomeKind { return OutcomeMissingInInternal }

func (Reconciled) matchOutcome() {}
func (Divergent) matchOutcome() {}
func (MissingInBank) matchOutcome() {}
func (MissingInInternal) matchOutcome() {}

func (o Reconciled) MarshalJSON() ([]byte, error) {
	type alias Reconciled
	return json.Marshal(struct {
		Status string `json:"status"`
		alias
	}{o.Kind().String(), alias(o)})
}

func (o Divergent) MarshalJSON() ([]byte, error) {
	type alias Divergent
	return json.Marshal(struct {
		Status           string `json:"status"`
		DivergenceReason string `json:"divergenceReason"`
		alias
	}{o.Kind().String(), o.ReasonText(), alias(o)})
}

func (o MissingInBank) MarshalJSON() ([]byte, error) {
	type alias MissingInBank
	return json.Marshal(struct {
		Status string `json:"status"`
		alias
	}{o.Kind().String(), alias(o)})
}

func (o MissingInInternal) MarshalJSON() ([]byte, error) {
	type alias MissingInInternal
	return json.Marshal(struct {
		Status string `json:"status"`
		alias
	}{o.Kind().String(), alias(o)})
}

// ReasonText joins all reasons with ";".
func (o Divergent) ReasonText() string {
	parts := make([]string, 0, len(o.Reasons))
	for _, r := range o.Reasons {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ";")
}

func (o Divergent) HasKeyCollision() bool {
	for _, r := range o.Reasons {
		if r.Kind == DivergenceTypeMismatch {
			return true
		}
	}
	return false
}

type DivergenceKind string

const (
	DivergenceAmountMismatch DivergenceKind = "AmountMismatch"
	DivergenceStatusMismatch DivergenceKind = "StatusMismatch"
	DivergenceTypeMismatch   DivergenceKind = "TypeMismatch"
)

// DivergenceReason carries the field that disagrees and both rendered values.
type DivergenceReason struct {
	Kind     DivergenceKind `json:"kind"`
	Internal string         `json:"internal"`
	Bank     string         `json:"bank"`
}

func (r DivergenceReason) String() string {
	return fmt.Sprintf("%s(%s,%s)", r.Kind, r.Internal, r.Bank)
}
