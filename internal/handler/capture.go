package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/internal/service"
	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/web"
	weberrors "github.com/halls510/project-list-pokemons/pkg/web/errors"
)

// CaptureProvider registers and lists captures.
type CaptureProvider interface {
	Register(ctx context.Context, trainerID int64, pokemonID int) (*model.Capture, error)
	ListByTrainer(ctx context.Context, trainerID int64, page, pageSize int) (*service.Page[*model.CaptureDetail], error)
	ListAll(ctx context.Context, page, pageSize int) (*service.Page[*model.CaptureDetail], error)
}

// CaptureHandler exposes the capture endpoints.
type CaptureHandler struct {
	svc    CaptureProvider
	logger logger.Logger
}

// NewCaptureHandler creates a CaptureHandler.
func NewCaptureHandler(svc CaptureProvider, l logger.Logger) *CaptureHandler {
	return &CaptureHandler{svc: svc, logger: l.Named("handler.capture")}
}

type registerCaptureRequest struct {
	TrainerID int64 `json:"trainer_id" binding:"required,min=1"`
	PokemonID int   `json:"pokemon_id" binding:"required,min=1"`
}

// Register handles POST /api/v1/captures.
func (h *CaptureHandler) Register(c *gin.Context) {
	var req registerCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeInvalidParams), weberrors.CodeInvalidParams, err.Error())
		return
	}

	capture, err := h.svc.Register(c.Request.Context(), req.TrainerID, req.PokemonID)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, capture)
}

// ListByTrainer handles GET /api/v1/trainers/:id/captures.
func (h *CaptureHandler) ListByTrainer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeInvalidParams), weberrors.CodeInvalidParams, "id must be a positive integer")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.svc.ListByTrainer(c.Request.Context(), id, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, result)
}

// ListAll handles GET /api/v1/captures.
func (h *CaptureHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.svc.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, result)
}
