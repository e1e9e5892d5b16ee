package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/halls510/project-list-pokemons/internal/dao"
	"github.com/halls510/project-list-pokemons/internal/metrics"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// CaptureRepo is the capture persistence surface the service consumes.
type CaptureRepo interface {
	Insert(ctx context.Context, c *model.Capture) error
	ListByTrainer(ctx context.Context, trainerID int64, limit, offset int) ([]*model.CaptureDetail, error)
	ListAll(ctx context.Context, limit, offset int) ([]*model.CaptureDetail, error)
	CountAll(ctx context.Context) (int64, error)
	CountByTrainer(ctx context.Context, trainerID int64) (int64, error)
}

// TrainerChecker reports whether a trainer id is registered.
type TrainerChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// PokemonChecker reports whether a pokemon id is in the catalog.
type PokemonChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// CaptureService registers and lists captures.
type CaptureService struct {
	repo     CaptureRepo
	trainers TrainerChecker
	pokemons PokemonChecker
	logger   logger.Logger
}

// NewCaptureService creates a CaptureService.
func NewCaptureService(repo CaptureRepo, trainers TrainerChecker, pokemons PokemonChecker, l logger.Logger) *CaptureService {
	return &CaptureService{
		repo:     repo,
		trainers: trainers,
		pokemons: pokemons,
		logger:   l.Named("service.capture"),
	}
}

// Register records that trainerID captured pokemonID. Both sides must
// exist; a repeated pair returns ErrAlreadyCaptured.
func (s *CaptureService) Register(ctx context.Context, trainerID int64, pokemonID int) (*model.Capture, error) {
	ok, err := s.trainers.Exists(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("check trainer: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("trainer %d: %w", trainerID, ErrNotFound)
	}

	ok, err = s.pokemons.Exists(ctx, pokemonID)
	if err != nil {
		return nil, fmt.Errorf("check pokemon: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("pokemon %d: %w", pokemonID, ErrNotFound)
	}

	capture := &model.Capture{TrainerID: trainerID, PokemonID: pokemonID}
	if err := s.repo.Insert(ctx, capture); err != nil {
		if errors.Is(err, dao.ErrDuplicate) {
			return nil, ErrAlreadyCaptured
		}
		return nil, fmt.Errorf("insert capture: %w", err)
	}

	metrics.CapturesRegistered.Inc()
	s.logger.Info("capture registered", "trainer_id", trainerID, "pokemon_id", pokemonID)
	return capture, nil
}

// ListByTrainer returns one page of one trainer's captures, newest first.
func (s *CaptureService) ListByTrainer(ctx context.Context, trainerID int64, page, pageSize int) (*Page[*model.CaptureDetail], error) {
	ok, err := s.trainers.Exists(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("check trainer: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("trainer %d: %w", trainerID, ErrNotFound)
	}

	page, pageSize = normalizePage(page, pageSize)

	items, err := s.repo.ListByTrainer(ctx, trainerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	total, err := s.repo.CountByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("count captures: %w", err)
	}

	return &Page[*model.CaptureDetail]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

// ListAll returns one page of all captures, newest first.
func (s *CaptureService) ListAll(ctx context.Context, page, pageSize int) (*Page[*model.CaptureDetail], error) {
	page, pageSize = normalizePage(page, pageSize)

	items, err := s.repo.ListAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count captures: %w", err)
	}

	return &Page[*model.CaptureDetail]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}
