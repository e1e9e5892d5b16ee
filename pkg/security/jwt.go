package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret no signing secret configured
	ErrMissingSecret = errors.New("security: jwt secret key is required")

	// ErrInvalidToken token failed signature or claims validation
	ErrInvalidToken = errors.New("security: invalid token")

	// ErrTokenExpired token is expired
	ErrTokenExpired = errors.New("security: token expired")
)

// JWTConfig JWT settings.
type JWTConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	Issuer    string        `mapstructure:"issuer"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

// DefaultJWTConfig returns a minimal working configuration; the secret must
// still be provided by the caller.
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Issuer:    "pokedexd",
		ExpiresIn: 24 * time.Hour,
	}
}

// Claims carries registered claims plus a caller-defined payload.
type Claims struct {
	jwt.RegisteredClaims

	Payload map[string]any `json:"payload,omitempty"`
}

// JWTManager issues and verifies HS256 tokens.
type JWTManager struct {
	cfg *JWTConfig
}

// NewJWTManager creates a manager from cfg.
func NewJWTManager(cfg *JWTConfig) (*JWTManager, error) {
	if cfg == nil {
		cfg = DefaultJWTConfig()
	}
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	if cfg.ExpiresIn <= 0 {
		cfg.ExpiresIn = 24 * time.Hour
	}
	return &JWTManager{cfg: cfg}, nil
}

// TokenTTL returns the lifetime of issued tokens.
func (m *JWTManager) TokenTTL() time.Duration {
	return m.cfg.ExpiresIn
}

// GenerateToken signs a token carrying payload.
func (m *JWTManager) GenerateToken(payload map[string]any) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.ExpiresIn)),
		},
		Payload: payload,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates tokenString, returning its claims.
func (m *JWTManager) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
