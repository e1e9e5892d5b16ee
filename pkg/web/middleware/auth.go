package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/pkg/security"
	"github.com/halls510/project-list-pokemons/pkg/web/errors"
)

const (
	// ClaimsKey is the gin context key holding the verified JWT claims.
	ClaimsKey = "jwt_claims"

	bearerPrefix = "Bearer "
)

// AuthConfig JWT authentication middleware settings.
type AuthConfig struct {
	JWTManager *security.JWTManager
	// SkipPaths are exact request paths that bypass authentication.
	SkipPaths []string
}

// Auth verifies the Authorization bearer token and stores its claims on
// the context.
func Auth(cfg *AuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := cfg.JWTManager.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(errors.CodeToStatus(errors.CodeUnauthorized), gin.H{
		"code":    errors.CodeUnauthorized,
		"message": msg,
		"data":    nil,
	})
}
