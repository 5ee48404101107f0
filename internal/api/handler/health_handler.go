package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Pinger is the slice of the connection pool the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is running. It checks nothing else.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler serves the readiness probe against live dependencies.
// rdb may be nil when the throttle cache is disabled; it is then reported
// as "disabled" and does not affect readiness.
type ReadinessHandler struct {
	pool Pinger
	rdb  *redis.Client
}

func NewReadinessHandler(pool Pinger, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{pool: pool, rdb: rdb}
}

// Readiness reports whether the service can reach its dependencies.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := map[string]string{"mysql": "ok", "redis": "disabled"}
	ready := true

	if err := h.pool.Ping(ctx); err != nil {
		deps["mysql"] = "unreachable"
		ready = false
	}

	if h.rdb != nil {
		deps["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			// The throttle degrades to a noop without redis; not fatal.
			deps["redis"] = "unreachable"
		}
	}

	if !ready {
		return c.JSON(http.StatusServiceUnavailable, deps)
	}
	return c.JSON(http.StatusOK, deps)
}
