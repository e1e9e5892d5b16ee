package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// Logger logs every request with latency and status.
func Logger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"latency", latency.String(),
			"request_id", RequestIDFrom(c),
		}

		switch {
		case len(c.Errors) > 0:
			for _, e := range c.Errors.Errors() {
				l.Error(e, fields...)
			}
		case status >= 400:
			l.Warn("http request", fields...)
		default:
			l.Info("http request", fields...)
		}
	}
}
