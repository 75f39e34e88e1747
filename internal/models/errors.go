package models

import (
	"errors"
	"fmt"
)

type (
	MapErrs     map[string]ErrorDetail
	ErrorDetail struct {
		Code         string `json:"code,omitempty"`
		ErrorMessage error  `json:"message,omitempty"`
	}
)

func (e ErrorDetail) Error() string {
	return fmt.Sprintf("code: %s, message: %v", e.Code, e.ErrorMessage)
}

func GetErrMap(code string, args ...string) ErrorDetail {
	v, ok := MapErrors[code]
	if !ok {
		return ErrorDetail{
			Code:         code,
			ErrorMessage: errors.New("unknown error mapping"),
		}
	}
	if len(args) > 0 {
		v.ErrorMessage = fmt.Errorf("%s caused by %s", v.ErrorMessage, args[0])
	}

	return v
}

const (
	ErrKeyLimitMustBeGreaterThanZero               = "limitMustBeGreaterThanZero"
	ErrKeyStartDateAndEndDateRequiredIfOneIsFilled = "startDateAndEndDateRequiredIfOneIsFilled"
	ErrKeyInvalidFormatDate                        = "invalidFormatDate"
	ErrKeyStartDateIsAfterEndDate                  = "startDateIsAfterEndDate"
	ErrKeyDaysMustBePositive                       = "days_gte"
	ErrKeyStartDateRequired                        = "startDate_required"
	ErrKeyEndDateRequired                          = "endDate_required"
	ErrKeyStartDateFormat                          = "startDate_dateOrDatetime"
	ErrKeyEndDateFormat                            = "endDate_dateOrDatetime"
)

// MapErrors maps validation keys (field_tag or plain key) to user facing codes.
var MapErrors = MapErrs{
	ErrKeyLimitMustBeGreaterThanZero: {
		Code:         "LIMIT_MUST_BE_GREATER_THAN_ZERO",
		ErrorMessage: errors.New("the limit must be greater than zero"),
	},
	ErrKeyStartDateAndEndDateRequiredIfOneIsFilled: {
		Code:         "START_DATE_AND_END_DATE_REQUIRED",
		ErrorMessage: errors.New("startDate and endDate are required if one of them is filled"),
	},
	ErrKeyInvalidFormatDate: {
		Code:         "INVALID_FORMAT_DATE",
		ErrorMessage: errors.New("invalid format date"),
	},
	ErrKeyStartDateIsAfterEndDate: {
		Code:         "START_DATE_IS_AFTER_END_DATE",
		ErrorMessage: errors.New("startDate must not be after endDate"),
	},
	ErrKeyDaysMustBePositive: {
		Code:         "DAYS_MUST_BE_POSITIVE",
		ErrorMessage: errors.New("days must not be negative"),
	},
	ErrKeyStartDateRequired: {
		Code:         "START_DATE_REQUIRED",
		ErrorMessage: errors.New("startDate is required"),
	},
	ErrKeyEndDateRequired: {
		Code:         "END_DATE_REQUIRED",
		ErrorMessage: errors.New("endDate is required"),
	},
	ErrKeyStartDateFormat: {
		Code:         "INVALID_START_DATE",
		ErrorMessage: errors.New("startDate must be YYYY-MM-DD or RFC3339"),
	},
	ErrKeyEndDateFormat: {
		Code:         "INVALID_END_DATE",
		ErrorMessage: errors.New("endDate must be YYYY-MM-DD or RFC3339"),
	},
}

var (
	// ErrSourceUnavailable means one of the two sources could not be read; the run fails.
	ErrSourceUnavailable = errors.New("reconciliation source unavailable")
	ErrExport            = errors.New("reconciliation export failed")
	ErrReportNotArchived = errors.New("reconciliation report was not archived")
)
