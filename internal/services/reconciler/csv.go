package reconciler

import (
	"encoding/csv"
	"fmt"
	"io"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
)

var CSVHeader = []string{
	"Status",
	"TransactionId",
	"ExternalId",
	"Amount",
	"Type",
	"TxId",
	"EndToEndId",
	"NossoNumero",
	"CreatedAt",
	"DivergenceReason",
}

// WriteCSV writes one row per outcome: reconciled, divergent, missing in bank, then
// missing internally. Every failure wraps models.ErrExport.
func WriteCSV(w io.Writer, report *models.ReconciliationReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("%w: failed to write header: %w", models.ErrExport, err)
	}

	for _, o := range report.Outcomes() {
		if err := cw.Write(CSVRow(o)); err != nil {
			return fmt.Errorf("%w: failed to write row: %w", models.ErrExport, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: failed to flush writer: %w", models.ErrExport, err)
	}

	return nil
}

// CSVRow renders an outcome. Rows of bank-only records use the bank fields and leave
// TransactionId blank.
func CSVRow(o models.MatchOutcome) []string {
	var (
		rec    models.ReconcilableRecord
		reason string
	)

	switch v := o.(type) {
	case models.Reconciled:
		rec = v.Internal
	case models.Divergent:
		rec = v.Internal
		reason = v.ReasonText()
	case models.MissingInBank:
		rec = v.Internal
	case models.MissingInInternal:
		rec = v.Bank
	default:
		panic(fmt.Sprintf("reconciler: unexpected outcome %T", o))
	}

	createdAt := ""
	if !rec.Timestamp.IsZero() {
		createdAt = rec.Timestamp.In(common.GetLocation()).Format(common.DateFormatYYYYMMDDWithTime)
	}

	return []string{
		o.Kind().Label(),
		rec.TransactionID,
		rec.ExternalID,
		common.FormatAmount(rec.Amount),
		string(rec.Type),
		rec.TxID,
		rec.EndToEndID,
		rec.NossoNumero,
		createdAt,
		reason,
	}
}
