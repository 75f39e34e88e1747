package reconciliation

import (
	"bytes"
	"errors"
	nethttp "net/http"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/http"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/http/middleware"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/validation"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
)

const (
	msgRunFailed     = "Erro interno na conciliação"
	msgHistoryFailed = "Erro interno na consulta"
	msgAutoFailed    = "Erro interno na conciliação automática"
	msgStatsFailed   = "Erro interno na consulta de estatísticas"
	msgExportFailed  = "Erro interno na exportação"
)

type reconciliationHandler struct {
	reconciliationService services.ReconciliationService
}

type DoHealthCheckResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service" example:"ReconciliationService"`
}

// New registers the reconciliation/ resources. Everything below /sicoob requires the internal secret key.
func New(app *echo.Group, reconciliationSvc services.ReconciliationService, m middleware.AppMiddleware) {
	handler := reconciliationHandler{
		reconciliationService: reconciliationSvc,
	}
	api := app.Group("/reconciliation")
	api.GET("/health", handler.healthCheck)

	sicoob := api.Group("/sicoob", m.InternalAuth)
	sicoob.POST("", handler.runReconciliation)
	sicoob.GET("/history", handler.getHistory)
	sicoob.POST("/auto", handler.runAutoReconciliation)
	sicoob.GET("/stats", handler.getStats)
	sicoob.GET("/export", handler.exportReport)
	sicoob.GET("/runs", handler.getRunList)
	sicoob.GET("/runs/:runId/download", handler.getRunDownloadURL)
}

// @Summary 	Reconciliation health
// @Tags 		Reconciliation
// @Produce		json
// @Success 200 {object} DoHealthCheckResponse
// @Router /reconciliation/health [get]
func (h *reconciliationHandler) healthCheck(c echo.Context) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, DoHealthCheckResponse{
		Status:    "healthy",
		Timestamp: common.Now(),
		Service:   "ReconciliationService",
	})
}

// runReconciliation API to reconcile a window and record it in the history
// @Summary Run Sicoob reconciliation
// @Description Reconcile internal transactions against the Sicoob statement of the window
// @Tags Reconciliation
// @Accept json
// @Produce json
// @Param payload body models.DoRunReconciliationRequest true "Window to reconcile"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.ReconciliationReport
// @Failure 400 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse} "Validation error"
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob [post]
func (h *reconciliationHandler) runReconciliation(c echo.Context) error {
	req := new(models.DoRunReconciliationRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	window, err := req.ToWindow()
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	report, err := h.reconciliationService.Run(c.Request().Context(), window)
	if err != nil {
		return http.HandleServiceError(c, err, msgRunFailed)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, report)
}

// @Summary 	Get reconciliation of a window
// @Description Latest recorded report of the exact window, re-derived when none was recorded
// @Tags 		Reconciliation
// @Produce		json
// @Param   params query models.DoGetReconciliationWindowRequest true "Window"
// @Param	X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.ReconciliationReport
// @Failure 400 {object} http.RestErrorResponseModel "Bad request error"
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob/history [get]
func (h *reconciliationHandler) getHistory(c echo.Context) error {
	window, err := bindWindow(c)
	if err != nil {
		return badRequest(c, err)
	}

	report, err := h.reconciliationService.History(c.Request().Context(), window)
	if err != nil {
		return http.HandleServiceError(c, err, msgHistoryFailed)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, report)
}

// @Summary 	Run automatic Sicoob reconciliation
// @Description Reconcile the trailing window ending today
// @Tags 		Reconciliation
// @Produce		json
// @Param	X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.ReconciliationReport
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob/auto [post]
func (h *reconciliationHandler) runAutoReconciliation(c echo.Context) error {
	report, err := h.reconciliationService.RunAuto(c.Request().Context())
	if err != nil {
		return http.HandleServiceError(c, err, msgAutoFailed)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, report)
}

// @Summary 	Get reconciliation statistics
// @Tags 		Reconciliation
// @Produce		json
// @Param   params query models.DoGetReconciliationStatsRequest false "Trailing days, 30 when empty"
// @Param	X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.ReconciliationStats
// @Failure 400 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse} "Validation error"
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob/stats [get]
func (h *reconciliationHandler) getStats(c echo.Context) error {
	var req models.DoGetReconciliationStatsRequest
	if err := c.Bind(&req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	stats, err := h.reconciliationService.Stats(c.Request().Context(), req.Days)
	if err != nil {
		return http.HandleServiceError(c, err, msgStatsFailed)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, stats)
}

// @Summary 	Export reconciliation CSV
// @Tags 		Reconciliation
// @Produce		text/csv
// @Param   params query models.DoGetReconciliationWindowRequest true "Window"
// @Param	X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {file} file "conciliacao_sicoob_{start}_{end}.csv"
// @Failure 400 {object} http.RestErrorResponseModel "Bad request error"
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob/export [get]
func (h *reconciliationHandler) exportReport(c echo.Context) error {
	window, err := bindWindow(c)
	if err != nil {
		return badRequest(c, err)
	}

	// buffered so a failure can still be answered with an error body
	var buf bytes.Buffer
	if err = h.reconciliationService.Export(c.Request().Context(), window, &buf); err != nil {
		return http.HandleServiceError(c, err, msgExportFailed)
	}

	http.CSVSuccessResponse(c, models.ReconciliationReportFilename(window.Start, window.End))
	_, err = buf.WriteTo(c.Response())
	return err
}

// @Summary 	Get recorded reconciliation runs
// @Tags 		Reconciliation
// @Produce		json
// @Param   params query models.DoGetListReconciliationRunRequest false "Filters and cursor"
// @Param	X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} http.RestPaginationResponseModel[[]models.DoGetReconciliationRunResponse]
// @Failure 400 {object} http.RestErrorResponseModel "Bad request error"
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob/runs [get]
func (h *reconciliationHandler) getRunList(c echo.Context) error {
	var queryFilter models.DoGetListReconciliationRunRequest
	if err := c.Bind(&queryFilter); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	opts, err := queryFilter.ToFilterOpts()
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	runs, err := h.reconciliationService.ListRuns(c.Request().Context(), *opts)
	if err != nil {
		return http.HandleServiceError(c, err, msgHistoryFailed)
	}

	return http.RestSuccessResponseCursorPagination[models.DoGetReconciliationRunResponse](c, runs, opts.Limit)
}

// @Summary 	Get download URL of an archived run
// @Tags 		Reconciliation
// @Produce		json
// @Param 	runId path string true "run identifier"
// @Param	X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.GetURLReconciliationRunResponse
// @Failure 404 {object} http.RestErrorResponseModel "Run not found or not archived"
// @Failure 500 {object} http.RestInternalErrorResponseModel "Internal server error"
// @Router /reconciliation/sicoob/runs/{runId}/download [get]
func (h *reconciliationHandler) getRunDownloadURL(c echo.Context) error {
	runID := c.Param("runId")

	url, err := h.reconciliationService.GetRunDownloadURL(c.Request().Context(), runID)
	if err != nil {
		if errors.Is(err, models.ErrReportNotArchived) {
			return http.RestErrorResponse(c, nethttp.StatusNotFound, err)
		}
		return http.HandleServiceError(c, err, msgHistoryFailed)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, models.NewGetURLReconciliationRunResponse(runID, url))
}

// bindWindow parses the startDate/endDate query.
func bindWindow(c echo.Context) (models.Window, error) {
	var req models.DoGetReconciliationWindowRequest
	if err := c.Bind(&req); err != nil {
		return models.Window{}, err
	}

	if err := validation.ValidateStruct(req); err != nil {
		return models.Window{}, err
	}

	return req.ToWindow()
}

func badRequest(c echo.Context, err error) error {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return http.RestErrorValidationResponse(c, err)
	}
	return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
}
