package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var validate = validator.New()

func init() {
	// field names in errors follow the json/query tags
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerDateOrDatetime()
}

type ErrorValidateResponse struct {
	Code    string `json:"code" example:"INVALID_START_DATE"`
	Field   string `json:"field,omitempty" example:"startDate"`
	Message string `json:"message" example:"startDate must be YYYY-MM-DD or RFC3339"`
}

func (e ErrorValidateResponse) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", e.Code, e.Field, e.Message)
}

// ValidateStruct returns a *multierror.Error of ErrorValidateResponse, or nil.
// Codes come from models.MapErrors keyed by "field_tag".
func ValidateStruct(toValidate any) error {
	err := validate.Struct(toValidate)
	if err == nil {
		return nil
	}

	var errs *multierror.Error

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		errs = multierror.Append(errs, ErrorValidateResponse{
			Code:    "INVALID",
			Message: err.Error(),
		})
		return errs.ErrorOrNil()
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		for _, valErr := range valErrs {
			errs = multierror.Append(errs, toErrorResponse(valErr))
		}
	}

	return errs.ErrorOrNil()
}

func toErrorResponse(valErr validator.FieldError) ErrorValidateResponse {
	key := fmt.Sprintf("%s_%s", valErr.Field(), valErr.Tag())
	if data, found := models.MapErrors[key]; found {
		return ErrorValidateResponse{
			Code:    data.Code,
			Field:   valErr.Field(),
			Message: data.ErrorMessage.Error(),
		}
	}

	return ErrorValidateResponse{
		Code:    "UNKNOWN",
		Field:   valErr.Field(),
		Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
	}
}

func registerDateOrDatetime() {
	validate.RegisterValidation("dateOrDatetime", func(fl validator.FieldLevel) bool {
		input := fl.Field().String()
		if input == "" {
			return true
		}
		_, err := common.ParseDateOrDatetime(input)
		return err == nil
	})
}
