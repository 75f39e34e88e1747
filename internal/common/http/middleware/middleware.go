package middleware

import (
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
)

// AppMiddleware carries the settings the echo middlewares need, not the whole config.
type AppMiddleware struct {
	secretKey       string
	gcloudProjectID string
}

func NewMiddleware(conf config.Config) AppMiddleware {
	return AppMiddleware{
		secretKey:       conf.SecretKey,
		gcloudProjectID: conf.GcloudProjectID,
	}
}
