package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/security"
	"github.com/halls510/project-list-pokemons/pkg/web"
	weberrors "github.com/halls510/project-list-pokemons/pkg/web/errors"
)

// AuthHandler issues API tokens against configured client credentials.
type AuthHandler struct {
	jwt     *security.JWTManager
	clients map[string]string // client_id -> client_secret
	logger  logger.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(jwt *security.JWTManager, clients map[string]string, l logger.Logger) *AuthHandler {
	return &AuthHandler{jwt: jwt, clients: clients, logger: l.Named("handler.auth")}
}

type tokenRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// IssueToken handles POST /api/v1/auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeInvalidParams), weberrors.CodeInvalidParams, err.Error())
		return
	}

	secret, ok := h.clients[req.ClientID]
	if !ok || subtle.ConstantTimeCompare([]byte(secret), []byte(req.ClientSecret)) != 1 {
		h.logger.Warn("token request rejected", "client_id", req.ClientID)
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeUnauthorized), weberrors.CodeUnauthorized, "invalid client credentials")
		return
	}

	token, err := h.jwt.GenerateToken(map[string]any{"client_id": req.ClientID})
	if err != nil {
		respondError(c, err)
		return
	}

	web.Success(c, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwt.TokenTTL().Seconds()),
	})
}
