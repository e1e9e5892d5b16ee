package dao

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

const capturesTable = "captures"

// CaptureDAO persists capture records.
type CaptureDAO struct {
	db     *postgres.Client
	logger logger.Logger
}

// NewCaptureDAO creates a CaptureDAO.
func NewCaptureDAO(db *postgres.Client, l logger.Logger) *CaptureDAO {
	return &CaptureDAO{db: db, logger: l.Named("dao.capture")}
}

// Insert writes c, filling in its id and capture timestamp. The check and
// the insert run in one transaction; the unique (trainer_id, pokemon_id)
// constraint backs the check up, and either path reports ErrDuplicate.
func (d *CaptureDAO) Insert(ctx context.Context, c *model.Capture) error {
	existsSQL, existsArgs, err := postgres.QueryBuilder.
		Select("1").From(capturesTable).
		Where(squirrel.Eq{"trainer_id": c.TrainerID, "pokemon_id": c.PokemonID}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return fmt.Errorf("build exists query: %w", err)
	}

	insertSQL, insertArgs, err := postgres.QueryBuilder.
		Insert(capturesTable).Columns("trainer_id", "pokemon_id").
		Values(c.TrainerID, c.PokemonID).
		Suffix("RETURNING id, captured_at").ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	return d.db.WithTx(ctx, func(tx postgres.Tx) error {
		exists, err := tx.Exists(ctx, existsSQL, existsArgs...)
		if err != nil {
			return fmt.Errorf("check capture: %w", err)
		}
		if exists {
			return ErrDuplicate
		}

		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&c.ID, &c.CapturedAt); err != nil {
			if postgres.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert capture: %w", err)
		}
		return nil
	})
}

var captureDetailQuery = postgres.QueryBuilder.
	Select("c.id", "c.trainer_id", "t.name AS trainer_name",
		"c.pokemon_id", "p.name AS pokemon_name", "c.captured_at").
	From(capturesTable + " c").
	Join(trainersTable + " t ON t.id = c.trainer_id").
	Join(pokemonsTable + " p ON p.id = c.pokemon_id")

// ListByTrainer returns one page of one trainer's captures, newest first.
func (d *CaptureDAO) ListByTrainer(ctx context.Context, trainerID int64, limit, offset int) ([]*model.CaptureDetail, error) {
	sql, args, err := captureDetailQuery.
		Where(squirrel.Eq{"c.trainer_id": trainerID}).
		OrderBy("c.captured_at DESC", "c.id DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return postgres.QueryAll[model.CaptureDetail](d.db, ctx, sql, args...)
}

// ListAll returns one page of all captures, newest first.
func (d *CaptureDAO) ListAll(ctx context.Context, limit, offset int) ([]*model.CaptureDetail, error) {
	sql, args, err := captureDetailQuery.
		OrderBy("c.captured_at DESC", "c.id DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return postgres.QueryAll[model.CaptureDetail](d.db, ctx, sql, args...)
}

// CountAll returns the total number of captures.
func (d *CaptureDAO) CountAll(ctx context.Context) (int64, error) {
	return d.db.Count(ctx, "SELECT COUNT(*) FROM "+capturesTable)
}

// CountByTrainer returns how many pokemons one trainer has captured.
func (d *CaptureDAO) CountByTrainer(ctx context.Context, trainerID int64) (int64, error) {
	sql, args, err := postgres.QueryBuilder.
		Select("COUNT(*)").From(capturesTable).
		Where(squirrel.Eq{"trainer_id": trainerID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	return d.db.Count(ctx, sql, args...)
}
