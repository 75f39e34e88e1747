package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CSVSuccessResponse sets the download headers and status. The caller streams the body
// into c.Response() afterwards.
func CSVSuccessResponse(c echo.Context, fileName string) {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", fileName))
	c.Response().WriteHeader(http.StatusOK)
}
