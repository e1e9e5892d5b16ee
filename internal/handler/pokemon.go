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

// PokemonProvider serves catalog reads.
type PokemonProvider interface {
	GetByID(ctx context.Context, id int) (*model.Pokemon, error)
	List(ctx context.Context, page, pageSize int) (*service.Page[*model.Pokemon], error)
	Random(ctx context.Context, count int) ([]*model.Pokemon, error)
	Total(ctx context.Context) (int64, error)
}

// PokemonHandler exposes the catalog endpoints.
type PokemonHandler struct {
	svc    PokemonProvider
	logger logger.Logger
}

// NewPokemonHandler creates a PokemonHandler.
func NewPokemonHandler(svc PokemonProvider, l logger.Logger) *PokemonHandler {
	return &PokemonHandler{svc: svc, logger: l.Named("handler.pokemon")}
}

// GetByID handles GET /api/v1/pokemons/:id.
func (h *PokemonHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		web.Error(c, weberrors.CodeToStatus(weberrors.CodeInvalidParams), weberrors.CodeInvalidParams, "id must be a positive integer")
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, p)
}

// List handles GET /api/v1/pokemons.
func (h *PokemonHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, result)
}

// Random handles GET /api/v1/pokemons/random.
func (h *PokemonHandler) Random(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "10"))

	pokemons, err := h.svc.Random(c.Request.Context(), count)
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, pokemons)
}

// Total handles GET /api/v1/pokemons/total.
func (h *PokemonHandler) Total(c *gin.Context) {
	total, err := h.svc.Total(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	web.Success(c, gin.H{"total": total})
}
