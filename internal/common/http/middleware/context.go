package middleware

import (
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"

	"github.com/labstack/echo/v4"
)

// Context stores the correlation data of the incoming request in its context.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := ctxdata.SetContextFromHTTP(req.Context(), req, m.gcloudProjectID)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
