package reconciliation

import (
	"context"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/flag"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services"
)

type reconciliationHandler struct {
	autoWindowDays    int
	reconciliationSrv services.ReconciliationService
}

func Routes(cfg config.ReconciliationConfig, rs services.ReconciliationService) map[string]func(ctx context.Context, date time.Time, flag flag.Job) error {
	handler := reconciliationHandler{
		autoWindowDays:    cfg.AutoWindowDays,
		reconciliationSrv: rs,
	}
	if handler.autoWindowDays <= 0 {
		handler.autoWindowDays = config.DefaultAutoWindowDays
	}

	return map[string]func(ctx context.Context, date time.Time, flag flag.Job) error{
		"RunSicoobAutoReconciliation": handler.RunSicoobAutoReconciliation,
		"ExportSicoobReconciliation":  handler.ExportSicoobReconciliation,
	}
}

// RunSicoobAutoReconciliation runs the trailing auto window ending on date, today when no date is given.
func (h *reconciliationHandler) RunSicoobAutoReconciliation(ctx context.Context, date time.Time, _ flag.Job) error {
	report, err := h.reconciliationSrv.RunAutoAt(ctx, referenceDate(date))
	if err != nil {
		return err
	}

	xlog.Info(ctx, "RunSicoobAutoReconciliation",
		xlog.String("run_id", report.RunID),
		xlog.Int("reconciled", report.Summary.ReconciledCount),
		xlog.Int("divergent", report.Summary.DivergentCount),
		xlog.Int("missing_in_bank", report.Summary.MissingInBankCount),
		xlog.Int("missing_in_internal", report.Summary.MissingInInternalCount),
		xlog.String("rate", report.Summary.ReconciliationRate.String()))

	return nil
}

// ExportSicoobReconciliation uploads the CSV of the same window the auto run covers. A recorded
// report is reused, otherwise the window is re-derived.
func (h *reconciliationHandler) ExportSicoobReconciliation(ctx context.Context, date time.Time, flag flag.Job) error {
	end := common.StartOfDay(referenceDate(date))
	window := models.Window{Start: end.AddDate(0, 0, -h.autoWindowDays), End: end}

	filePath, err := h.reconciliationSrv.ExportToStorage(ctx, window, flag.BucketName)
	if err != nil {
		return err
	}

	xlog.Info(ctx, "ExportSicoobReconciliation", xlog.String("file", filePath))

	return nil
}

func referenceDate(date time.Time) time.Time {
	if date.IsZero() {
		return common.Now()
	}
	return date
}
