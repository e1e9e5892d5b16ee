package dao

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

const trainersTable = "trainers"

// TrainerDAO persists trainers.
type TrainerDAO struct {
	db     *postgres.Client
	logger logger.Logger
}

// NewTrainerDAO creates a TrainerDAO.
func NewTrainerDAO(db *postgres.Client, l logger.Logger) *TrainerDAO {
	return &TrainerDAO{db: db, logger: l.Named("dao.trainer")}
}

// Insert writes t and fills in its assigned id. A CPF collision returns
// ErrDuplicate.
func (d *TrainerDAO) Insert(ctx context.Context, t *model.Trainer) error {
	sql, args, err := postgres.QueryBuilder.
		Insert(trainersTable).Columns("name", "age", "cpf").
		Values(t.Name, t.Age, t.CPF).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := d.db.QueryRow(ctx, sql, args...).Scan(&t.ID); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert trainer: %w", err)
	}
	return nil
}

// GetByID returns one trainer, or postgres.ErrNoRows when absent.
func (d *TrainerDAO) GetByID(ctx context.Context, id int64) (*model.Trainer, error) {
	sql, args, err := postgres.QueryBuilder.
		Select("id", "name", "age", "cpf").From(trainersTable).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}
	return postgres.QueryOne[model.Trainer](d.db, ctx, sql, args...)
}

// Exists reports whether the trainer id is registered.
func (d *TrainerDAO) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := postgres.QueryBuilder.
		Select("1").From(trainersTable).Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	return d.db.Exists(ctx, sql, args...)
}

// ExistsCPF reports whether a trainer with the given normalized CPF is
// already registered.
func (d *TrainerDAO) ExistsCPF(ctx context.Context, cpf string) (bool, error) {
	sql, args, err := postgres.QueryBuilder.
		Select("1").From(trainersTable).Where(squirrel.Eq{"cpf": cpf}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	return d.db.Exists(ctx, sql, args...)
}
