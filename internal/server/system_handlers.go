package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/api"
	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check is one dependency probed by the readiness endpoint.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

// @Summary      Liveness
// @Tags         system
// @Produce      json
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// Ready answers 200 when every check passes and 503 otherwise, listing the
// state of each dependency.
//
// @Summary      Readiness
// @Tags         system
// @Produce      json
// @Router       /ready [get]
func Ready(checks []Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		status := http.StatusOK
		report := make(map[string]string, len(checks))
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logger.Warn("readiness check failed", "check", check.Name, "error", err)
				report[check.Name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			report[check.Name] = "up"
		}

		c.JSON(status, report)
	}
}

// @Summary      Prometheus metrics
// @Tags         system
// @Produce      text/plain
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
