package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// HealthHandler reports readiness of the storage backends.
type HealthHandler struct {
	checks map[string]Pinger
	logger logger.Logger
}

// NewHealthHandler creates a HealthHandler over named backends.
func NewHealthHandler(checks map[string]Pinger, l logger.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: l.Named("handler.health")}
}

// Healthz handles GET /healthz. Any failing backend turns the response
// into a 503 with per-backend status.
func (h *HealthHandler) Healthz(c *gin.Context) {
	status := http.StatusOK
	detail := make(map[string]string, len(h.checks))

	for name, p := range h.checks {
		if err := p.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("health check failed", "backend", name, "error", err)
			detail[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		detail[name] = "ok"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "backends": detail})
}

// MetricsHandler serves the Prometheus registry.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
