package common

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrDataNotFound      = errors.New("data not found")
	ErrInvalidFormatDate = errors.New("invalid format date")
	ErrFilePathEmpty     = errors.New("file path is empty")
	ErrBucketNameEmpty   = errors.New("bucket name is empty")
)
