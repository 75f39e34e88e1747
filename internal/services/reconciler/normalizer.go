// Package reconciler holds the in-memory reconciliation pipeline: normalization,
// key indexing, matching, classification and aggregation. Nothing in here performs I/O.
package reconciler

import (
	"fmt"
	"strings"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

var internalStatuses = map[string]models.CanonicalStatus{
	"CONFIRMED":      models.StatusSettled,
	"INITIATED":      models.StatusPending,
	"PROCESSING":     models.StatusPending,
	"PENDING":        models.StatusPending,
	"UNDER_ANALYSIS": models.StatusPending,
	"ISSUED":         models.StatusPending,
	"REJECTED":       models.StatusFailed,
	"FAILED":         models.StatusFailed,
	"CANCELLED":      models.StatusCancelled,
	"EXPIRED":        models.StatusCancelled,
}

var bankStatuses = map[string]models.CanonicalStatus{
	"CONCLUIDA":        models.StatusSettled,
	"LIQUIDADO":        models.StatusSettled,
	"LIQUIDADA":        models.StatusSettled,
	"CONFIRMADA":       models.StatusSettled,
	"PAGO":             models.StatusSettled,
	"SETTLED":          models.StatusSettled,
	"COMPLETED":        models.StatusSettled,
	"CONFIRMED":        models.StatusSettled,
	"PENDENTE":         models.StatusPending,
	"EM_PROCESSAMENTO": models.StatusPending,
	"ATIVA":            models.StatusPending,
	"EM_ABERTO":        models.StatusPending,
	"REGISTRADO":       models.StatusPending,
	"PENDING":          models.StatusPending,
	"PROCESSING":       models.StatusPending,
	"REJEITADA":        models.StatusFailed,
	"DEVOLVIDA":        models.StatusFailed,
	"ERRO":             models.StatusFailed,
	"FAILED":           models.StatusFailed,
	"REJECTED":         models.StatusFailed,
	"CANCELADA":        models.StatusCancelled,
	"BAIXADO":          models.StatusCancelled,
	"EXPIRADA":         models.StatusCancelled,
	"CANCELLED":        models.StatusCancelled,
	"EXPIRED":          models.StatusCancelled,
}

var transactionTypes = map[string]models.TransactionType{
	"PIX":    models.TransactionTypePix,
	"TED":    models.TransactionTypeTed,
	"DOC":    models.TransactionTypeTed,
	"BOLETO": models.TransactionTypeBoleto,
	"CRIPTO": models.TransactionTypeCrypto,
	"CRYPTO": models.TransactionTypeCrypto,
}

func vocabularyKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func lookupStatus(vocabulary map[string]models.CanonicalStatus, raw string) (models.CanonicalStatus, error) {
	status, ok := vocabulary[vocabularyKey(raw)]
	if !ok {
		return "", fmt.Errorf("%w %q", models.ErrUnknownStatus, raw)
	}
	return status, nil
}

func lookupType(raw string) (models.TransactionType, error) {
	t, ok := transactionTypes[vocabularyKey(raw)]
	if !ok {
		return "", fmt.Errorf("%w %q", models.ErrUnknownType, raw)
	}
	return t, nil
}

// NormalizeInternal maps a ledger row to the common record shape.
func NormalizeInternal(tx models.LedgerTransaction, position int) (models.ReconcilableRecord, error) {
	rec := models.ReconcilableRecord{
		Origin:        models.OriginInternal,
		TransactionID: strings.TrimSpace(tx.TransactionID),
		ExternalID:    strings.TrimSpace(tx.ExternalID),
		Amount:        common.RoundToCents(tx.Amount),
		RawStatus:     tx.Status,
		TxID:          strings.TrimSpace(tx.TxID),
		EndToEndID:    strings.TrimSpace(tx.EndToEndID),
		NossoNumero:   strings.TrimSpace(tx.NossoNumero),
		Timestamp:     tx.CreatedAt,
		Position:      position,
	}

	if rec.ExternalID == "" {
		return rec, newNormalizationError(rec, models.ErrMissingIdentity)
	}

	var err error
	if rec.Status, err = lookupStatus(internalStatuses, tx.Status); err != nil {
		return rec, newNormalizationError(rec, err)
	}
	if rec.Type, err = lookupType(tx.Type); err != nil {
		return rec, newNormalizationError(rec, err)
	}

	return rec, nil
}

// NormalizeBank maps a statement entry to the common record shape.
func NormalizeBank(tx models.StatementTransaction, position int) (models.ReconcilableRecord, error) {
	rec := models.ReconcilableRecord{
		Origin:      models.OriginBank,
		ExternalID:  strings.TrimSpace(tx.ExternalID),
		Amount:      common.RoundToCents(tx.Amount),
		RawStatus:   tx.Status,
		TxID:        strings.TrimSpace(tx.TxID),
		EndToEndID:  strings.TrimSpace(tx.EndToEndID),
		NossoNumero: strings.TrimSpace(tx.NossoNumero),
		Timestamp:   tx.ProcessedAt.Time,
		Position:    position,
	}

	if !rec.HasCorrelationKey() {
		return rec, newNormalizationError(rec, models.ErrMissingIdentity)
	}

	var err error
	if rec.Status, err = lookupStatus(bankStatuses, tx.Status); err != nil {
		return rec, newNormalizationError(rec, err)
	}
	if rec.Type, err = lookupType(tx.Type); err != nil {
		return rec, newNormalizationError(rec, err)
	}

	return rec, nil
}

func newNormalizationError(rec models.ReconcilableRecord, err error) models.NormalizationError {
	return models.NormalizationError{
		Origin:     rec.Origin,
		Position:   rec.Position,
		Identifier: rec.Identifier(),
		Reason:     err.Error(),
		Err:        err,
	}
}

// Normalized is the output of the normalizing stage.
type Normalized struct {
	Internal []models.ReconcilableRecord
	Bank     []models.ReconcilableRecord
	Errors   []models.NormalizationError
}

// Normalize converts both sources keeping their order. Rejected records are collected in
// Errors and never reach the matcher.
func Normalize(internal []models.LedgerTransaction, bank []models.StatementTransaction) Normalized {
	out := Normalized{
		Internal: make([]models.ReconcilableRecord, 0, len(internal)),
		Bank:     make([]models.ReconcilableRecord, 0, len(bank)),
	}

	for i, tx := range internal {
		rec, err := NormalizeInternal(tx, i)
		if err != nil {
			out.Errors = append(out.Errors, asNormalizationError(err))
			continue
		}
		out.Internal = append(out.Internal, rec)
	}

	for i, tx := range bank {
		rec, err := NormalizeBank(tx, i)
		if err != nil {
			out.Errors = append(out.Errors, asNormalizationError(err))
			continue
		}
		out.Bank = append(out.Bank, rec)
	}

	return out
}

func asNormalizationError(err error) models.NormalizationError {
	if ne, ok := err.(models.NormalizationError); ok {
		return ne
	}
	return models.NormalizationError{Reason: err.Error(), Err: err}
}
