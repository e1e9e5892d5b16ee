package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/web"
	weberrors "github.com/halls510/project-list-pokemons/pkg/web/errors"
)

// TrainerProvider registers and serves trainers.
type TrainerProvider interface {
	Register(ctx context.Context, name string, age int, cpf string) (*model.Trainer, error)
	GetByID(ctx context.Context, id int64) (*model.Trainer, error)
}

// TrainerHandler exposes the trainer endpoints.
type TrainerHandler struct {
	svc    TrainerProvider
	logger logger.Logger
}

// NewTrainerHandler creates a TrainerHandler.
func NewTrainerHandler(svc TrainerProvider, l logger.Logger) *TrainerHandler {
	return &TrainerHandler{svc: svc, logger: l.Named("handler.trainer")}
}

type registerTrainerRequest struct {
	Name string `json:"name" binding:"required"`
	Age  int    `json:"age" binding:"required"`
	CPF  string `json:"cpf" binding:"required,cpf"`
}

// Register handles POST /api/v1/trainers.
func (h *TrainerHandler) Register(c *gin.Context) {
	var req registerTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeInvalidParams), weberrors.CodeInvalidParams, err.Error())
		return
	}

	trainer, err := h.svc.Register(c.Request.Context(), req.Name, req.Age, req.CPF)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, trainer)
}

// GetByID handles GET /api/v1/trainers/:id.
func (h *TrainerHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeInvalidParams), weberrors.CodeInvalidParams, "id must be a positive integer")
		return
	}

	trainer, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, trainer)
}
