// Package handler mounts the HTTP API on the shared web server.
package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/internal/service"
	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/security"
	"github.com/halls510/project-list-pokemons/pkg/web"
	weberrors "github.com/halls510/project-list-pokemons/pkg/web/errors"
	"github.com/halls510/project-list-pokemons/pkg/web/middleware"
)

// Pinger reports backend connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps collects everything the routes need.
type Deps struct {
	Pokemons *PokemonHandler
	Trainers *TrainerHandler
	Captures *CaptureHandler
	Auth     *AuthHandler
	Health   *HealthHandler
	JWT      *security.JWTManager
	Logger   logger.Logger
}

// Register mounts every route. The v1 API sits behind JWT auth; health,
// metrics and the token endpoint stay open.
func Register(router *gin.Engine, deps *Deps) {
	router.GET("/healthz", deps.Health.Healthz)
	router.GET("/metrics", MetricsHandler())

	router.POST("/api/v1/auth/token", deps.Auth.IssueToken)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(&middleware.AuthConfig{JWTManager: deps.JWT}))
	{
		v1.GET("/pokemons", deps.Pokemons.List)
		v1.GET("/pokemons/total", deps.Pokemons.Total)
		v1.GET("/pokemons/random", deps.Pokemons.Random)
		v1.GET("/pokemons/:id", deps.Pokemons.GetByID)

		v1.POST("/trainers", deps.Trainers.Register)
		v1.GET("/trainers/:id", deps.Trainers.GetByID)
		v1.GET("/trainers/:id/captures", deps.Captures.ListByTrainer)

		v1.POST("/captures", deps.Captures.Register)
		v1.GET("/captures", deps.Captures.ListAll)
	}
}

// respondError translates service sentinels into the response envelope.
func respondError(c *gin.Context, err error) {
	code := weberrors.CodeInternalError
	msg := "internal error"

	switch {
	case errors.Is(err, service.ErrNotFound):
		code, msg = weberrors.CodeNotFound, "record not found"
	case errors.Is(err, service.ErrAlreadyCaptured):
		code, msg = weberrors.CodeConflict, "pokemon already captured by this trainer"
	case errors.Is(err, service.ErrDuplicateCPF):
		code, msg = weberrors.CodeConflict, "cpf already registered"
	case errors.Is(err, service.ErrInvalidCPF):
		code, msg = weberrors.CodeInvalidParams, "invalid cpf"
	case errors.Is(err, service.ErrInvalidAge):
		code, msg = weberrors.CodeInvalidParams, "invalid age"
	case errors.Is(err, service.ErrInvalidName):
		code, msg = weberrors.CodeInvalidParams, "invalid name"
	}

	web.Error(c, weberrors.CodeToStatus(code), code, msg)
}
