package http

import (
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
	"golang.org/x/exp/slices"
)

type (
	RestErrorResponseModel struct {
		Status  string `json:"status" example:"error"`
		Code    any    `json:"code"`
		Message string `json:"message" example:"error"`
	}

	RestPaginationResponseModel[T any] struct {
		Kind       string           `json:"kind" example:"collection"`
		Contents   T                `json:"contents"`
		Pagination CursorPagination `json:"pagination"`
	}

	// RestInternalErrorResponseModel is the 500 body. Only a generic message is exposed.
	RestInternalErrorResponseModel struct {
		Error string `json:"error" example:"Erro interno na conciliação"`
	}

	RestErrorValidationResponseModel struct {
		Status  string `json:"status" example:"error"`
		Message string `json:"message" example:"validation failed"`
		Errors  any    `json:"errors"`
	}
)

const (
	statusError    = "error"
	kindCollection = "collection"
)

func RestSuccessResponse(c echo.Context, code int, in any) error {
	return c.JSON(code, in)
}

// RestSuccessResponseCursorPagination expects data fetched with limit+1 rows; the extra
// row only signals another page and is not rendered.
func RestSuccessResponseCursorPagination[ModelResponse any, S ~[]E, E PaginateableContent[ModelResponse]](c echo.Context, data S, requestLimit int) error {
	hasMorePages := requestLimit > 0 && len(data) >= requestLimit
	if hasMorePages {
		data = data[:requestLimit-1]
	}

	// backward pages are fetched in ascending order
	if directionOf(c) == pageBackward {
		slices.Reverse(data)
	}

	contents := make([]ModelResponse, len(data))
	for i, datum := range data {
		contents[i] = datum.ToModelResponse()
	}

	return c.JSON(http.StatusOK, RestPaginationResponseModel[[]ModelResponse]{
		Kind:       kindCollection,
		Contents:   contents,
		Pagination: NewCursorPagination[ModelResponse](c, data, hasMorePages),
	})
}

// newErrorResponse prefers the code of an *echo.HTTPError or a models.ErrorDetail in the
// chain over statusCode.
func newErrorResponse(statusCode int, err error) RestErrorResponseModel {
	if err == nil {
		err = errors.New(http.StatusText(statusCode))
	}
	res := RestErrorResponseModel{Status: statusError, Code: statusCode, Message: err.Error()}

	var detail models.ErrorDetail
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &detail):
		res.Code = detail.Code
		res.Message = detail.ErrorMessage.Error()
	case errors.As(err, &echoErr):
		res.Code = echoErr.Code
		res.Message = fmt.Sprint(echoErr.Message)
	}

	return res
}

func RestErrorResponse(c echo.Context, statusCode int, err error) error {
	return c.JSON(statusCode, newErrorResponse(statusCode, err))
}

func RestInternalErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusInternalServerError, RestInternalErrorResponseModel{Error: message})
}

// RestErrorValidationResponse renders the field errors of a *multierror.Error with 400.
func RestErrorValidationResponse(c echo.Context, err error) error {
	res := RestErrorValidationResponseModel{
		Status:  statusError,
		Message: common.ErrValidation.Error(),
		Errors:  []string{err.Error()},
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		res.Errors = merr.Errors
	}

	return c.JSON(http.StatusBadRequest, res)
}
