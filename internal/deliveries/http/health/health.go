package health

import (
	"context"
	nethttp "net/http"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/http"
	xlog "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 2 * time.Second

// Check probes one dependency the reconciliation runs need, e.g. the ledger database.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type healthHandler struct {
	checks []Check
}

// New registers liveness on /health and readiness on /health/ready.
func New(app *echo.Echo, checks ...Check) {
	hh := healthHandler{checks: checks}
	app.GET("/health", hh.liveness)
	app.GET("/health/ready", hh.readiness)
}

type (
	DoHealthCheckLivenessResponse struct {
		Kind   string `json:"kind" example:"health"`
		Status string `json:"status" example:"server is up and running"`
	}

	DoHealthCheckReadinessResponse struct {
		Kind         string            `json:"kind" example:"readiness"`
		Ready        bool              `json:"ready" example:"true"`
		Dependencies map[string]string `json:"dependencies"`
	}
)

// liveness godoc
// @Summary 	Liveness of the server
// @Produce		json
// @Success 200 {object} DoHealthCheckLivenessResponse
// @Router /health [get]
func (hh healthHandler) liveness(c echo.Context) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, DoHealthCheckLivenessResponse{
		Kind:   "health",
		Status: "server is up and running",
	})
}

// readiness godoc
// @Summary 	Readiness of the reconciliation dependencies
// @Produce		json
// @Success 200 {object} DoHealthCheckReadinessResponse
// @Failure 503 {object} DoHealthCheckReadinessResponse
// @Router /health/ready [get]
func (hh healthHandler) readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	res := DoHealthCheckReadinessResponse{
		Kind:         "readiness",
		Ready:        true,
		Dependencies: make(map[string]string, len(hh.checks)),
	}
	for _, check := range hh.checks {
		if err := check.Probe(ctx); err != nil {
			xlog.Warn(ctx, "[HEALTH]", xlog.String("dependency", check.Name), xlog.Err(err))
			res.Ready = false
			res.Dependencies[check.Name] = "down"
			continue
		}
		res.Dependencies[check.Name] = "up"
	}

	code := nethttp.StatusOK
	if !res.Ready {
		code = nethttp.StatusServiceUnavailable
	}
	return http.RestSuccessResponse(c, code, res)
}
