package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"campusevents/internal/delivery/http/helpers"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthResponse is the data of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// HealthController serves liveness checks.
type HealthController struct {
	Logger  *slog.Logger
	Backend string
	// Pinger is nil for backends with nothing to reach.
	Pinger Pinger
}

// NewHealthController creates a HealthController for the named store backend.
func NewHealthController(logger *slog.Logger, backend string, pinger Pinger) *HealthController {
	return &HealthController{Logger: logger, Backend: backend, Pinger: pinger}
}

// Health godoc
// @Summary Liveness check
// @Description Reports ok when the server and its store backend are reachable.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.Pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := c.Pinger.PingContext(ctx); err != nil {
			c.Logger.WarnContext(r.Context(), "health check failed", "backend", c.Backend, "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "store backend unreachable")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Backend: c.Backend})
}
