package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	commonhttp "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/http"

	"github.com/labstack/echo/v4"
)

const HeaderSecretKey = "X-Secret-Key"

var (
	errSecretKeyRequired = errors.New("required secret key")
	errSecretKeyInvalid  = errors.New("invalid secret key")
)

func (m *AppMiddleware) InternalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secretKey := c.Request().Header.Get(HeaderSecretKey)
		if secretKey == "" {
			return commonhttp.RestErrorResponse(c, http.StatusUnauthorized, errSecretKeyRequired)
		}

		if subtle.ConstantTimeCompare([]byte(secretKey), []byte(m.secretKey)) != 1 {
			return commonhttp.RestErrorResponse(c, http.StatusUnauthorized, errSecretKeyInvalid)
		}

		return next(c)
	}
}
