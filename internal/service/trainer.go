package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/halls510/project-list-pokemons/internal/cache"
	"github.com/halls510/project-list-pokemons/internal/dao"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/checksum"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

const maxTrainerAge = 150

// TrainerRepo is the trainer persistence surface the service consumes.
type TrainerRepo interface {
	Insert(ctx context.Context, t *model.Trainer) error
	GetByID(ctx context.Context, id int64) (*model.Trainer, error)
	ExistsCPF(ctx context.Context, cpf string) (bool, error)
}

// TrainerService registers and serves trainers.
type TrainerService struct {
	repo   TrainerRepo
	cache  *cache.Store
	logger logger.Logger
}

// NewTrainerService creates a TrainerService.
func NewTrainerService(repo TrainerRepo, store *cache.Store, l logger.Logger) *TrainerService {
	return &TrainerService{repo: repo, cache: store, logger: l.Named("service.trainer")}
}

// Register validates and stores a new trainer. The CPF is checksum
// validated and stored normalized; a CPF already registered returns
// ErrDuplicateCPF regardless of formatting.
func (s *TrainerService) Register(ctx context.Context, name string, age int, cpf string) (*model.Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if age <= 0 || age > maxTrainerAge {
		return nil, ErrInvalidAge
	}

	normalized := checksum.NormalizeCPF(cpf)
	if !checksum.ValidCPF(normalized) {
		return nil, ErrInvalidCPF
	}

	exists, err := s.repo.ExistsCPF(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("check cpf: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCPF
	}

	trainer := &model.Trainer{Name: name, Age: age, CPF: normalized}
	if err := s.repo.Insert(ctx, trainer); err != nil {
		if errors.Is(err, dao.ErrDuplicate) {
			return nil, ErrDuplicateCPF
		}
		return nil, fmt.Errorf("insert trainer: %w", err)
	}

	s.logger.Info("trainer registered", "trainer_id", trainer.ID)
	return trainer, nil
}

// GetByID returns one trainer, cache first.
func (s *TrainerService) GetByID(ctx context.Context, id int64) (*model.Trainer, error) {
	key := cache.KeyTrainer(id)
	if t, ok := cache.GetJSON[model.Trainer](s.cache, ctx, "trainer", key); ok {
		return t, nil
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load trainer %d: %w", id, err)
	}

	s.cache.SetJSON(ctx, key, t, cache.RecordTTL)
	return t, nil
}
