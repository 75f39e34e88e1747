package models

import (
	"net/http"
)

// RetryableHTTPCodes are the statement responses worth another attempt.
var RetryableHTTPCodes = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

func IsRetryableHTTPCode(code int) bool {
	_, ok := RetryableHTTPCodes[code]
	return ok
}
