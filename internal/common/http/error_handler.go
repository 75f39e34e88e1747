package http

import (
	"errors"
	"net/http"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/labstack/echo/v4"
)

// HandleServiceError maps service errors to a status code. Unexpected errors are answered
// with internalMessage so no internals leak to the caller.
func HandleServiceError(c echo.Context, err error, internalMessage string) error {
	var detail models.ErrorDetail
	switch {
	case err == nil:
		return nil
	case errors.As(err, &detail):
		return RestErrorResponse(c, http.StatusBadRequest, err)
	case errors.Is(err, common.ErrDataNotFound):
		return RestErrorResponse(c, http.StatusNotFound, err)
	default:
		return RestInternalErrorResponse(c, internalMessage)
	}
}
