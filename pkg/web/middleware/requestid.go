package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the inbound/outbound request id header.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID assigns each request a UUID unless the client supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the request id stored on the context.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
