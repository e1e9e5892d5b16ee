package dao

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

const (
	pokemonsTable   = "pokemons"
	evolutionsTable = "evolutions"
)

var pokemonColumns = []string{"id", "name", "height", "weight", "base_experience", "sprite_base64", "hash"}

// PokemonDAO persists the synchronized catalog.
type PokemonDAO struct {
	db     *postgres.Client
	logger logger.Logger
}

// NewPokemonDAO creates a PokemonDAO.
func NewPokemonDAO(db *postgres.Client, l logger.Logger) *PokemonDAO {
	return &PokemonDAO{db: db, logger: l.Named("dao.pokemon")}
}

// CountAll returns the number of catalog records.
func (d *PokemonDAO) CountAll(ctx context.Context) (int64, error) {
	return d.db.Count(ctx, "SELECT COUNT(*) FROM "+pokemonsTable)
}

// Exists reports whether id is in the catalog.
func (d *PokemonDAO) Exists(ctx context.Context, id int) (bool, error) {
	sql, args, err := postgres.QueryBuilder.
		Select("1").From(pokemonsTable).Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	return d.db.Exists(ctx, sql, args...)
}

type idRow struct {
	ID int `db:"id"`
}

// ListAllIDs returns every catalog id as a set.
func (d *PokemonDAO) ListAllIDs(ctx context.Context) (map[int]struct{}, error) {
	rows, err := postgres.QueryAll[idRow](d.db, ctx, "SELECT id FROM "+pokemonsTable)
	if err != nil {
		return nil, err
	}
	ids := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		ids[r.ID] = struct{}{}
	}
	return ids, nil
}

type hashRow struct {
	ID   int    `db:"id"`
	Hash string `db:"hash"`
}

// ListHashes returns the stored fingerprint for each of the given ids.
// Ids absent from the catalog are simply missing from the result.
func (d *PokemonDAO) ListHashes(ctx context.Context, ids []int) (map[int]string, error) {
	if len(ids) == 0 {
		return map[int]string{}, nil
	}
	sql, args, err := postgres.QueryBuilder.
		Select("id", "hash").From(pokemonsTable).Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build hashes query: %w", err)
	}
	rows, err := postgres.QueryAll[hashRow](d.db, ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	hashes := make(map[int]string, len(rows))
	for _, r := range rows {
		hashes[r.ID] = r.Hash
	}
	return hashes, nil
}

// GetByID returns one pokemon with its evolution line, or
// postgres.ErrNoRows when absent.
func (d *PokemonDAO) GetByID(ctx context.Context, id int) (*model.Pokemon, error) {
	sql, args, err := postgres.QueryBuilder.
		Select(pokemonColumns...).From(pokemonsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	p, err := postgres.QueryOne[model.Pokemon](d.db, ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if err := d.attachEvolutions(ctx, []*model.Pokemon{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPage returns one page of the catalog ordered by id.
func (d *PokemonDAO) ListPage(ctx context.Context, limit, offset int) ([]*model.Pokemon, error) {
	sql, args, err := postgres.QueryBuilder.
		Select(pokemonColumns...).From(pokemonsTable).
		OrderBy("id").Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	pokemons, err := postgres.QueryAll[model.Pokemon](d.db, ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if err := d.attachEvolutions(ctx, pokemons); err != nil {
		return nil, err
	}
	return pokemons, nil
}

// InsertBatch writes pokemons and their evolution lines inside tx.
func (d *PokemonDAO) InsertBatch(ctx context.Context, tx postgres.Tx, pokemons []*model.Pokemon) error {
	if len(pokemons) == 0 {
		return nil
	}

	insertSQL, _, err := postgres.QueryBuilder.
		Insert(pokemonsTable).Columns(pokemonColumns...).
		Values(0, "", 0, 0, 0, "", "").ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	argsList := make([][]any, 0, len(pokemons))
	for _, p := range pokemons {
		argsList = append(argsList, []any{p.ID, p.Name, p.Height, p.Weight, p.BaseExperience, p.SpriteBase64, p.Hash})
	}
	if _, err := tx.ExecBatch(ctx, insertSQL, argsList); err != nil {
		return fmt.Errorf("insert pokemons: %w", err)
	}

	return d.insertEvolutions(ctx, tx, pokemons)
}

// UpdateBatch rewrites pokemons and replaces their evolution lines inside tx.
func (d *PokemonDAO) UpdateBatch(ctx context.Context, tx postgres.Tx, pokemons []*model.Pokemon) error {
	if len(pokemons) == 0 {
		return nil
	}

	updateSQL, _, err := postgres.QueryBuilder.
		Update(pokemonsTable).
		Set("name", "").Set("height", 0).Set("weight", 0).
		Set("base_experience", 0).Set("sprite_base64", "").Set("hash", "").
		Where(squirrel.Eq{"id": 0}).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	argsList := make([][]any, 0, len(pokemons))
	for _, p := range pokemons {
		argsList = append(argsList, []any{p.Name, p.Height, p.Weight, p.BaseExperience, p.SpriteBase64, p.Hash, p.ID})
	}
	if _, err := tx.ExecBatch(ctx, updateSQL, argsList); err != nil {
		return fmt.Errorf("update pokemons: %w", err)
	}

	ids := make([]int, len(pokemons))
	for i, p := range pokemons {
		ids[i] = p.ID
	}
	deleteSQL, args, err := postgres.QueryBuilder.
		Delete(evolutionsTable).Where(squirrel.Eq{"pokemon_id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("build evolutions delete: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteSQL, args...); err != nil {
		return fmt.Errorf("delete evolutions: %w", err)
	}

	return d.insertEvolutions(ctx, tx, pokemons)
}

func (d *PokemonDAO) insertEvolutions(ctx context.Context, tx postgres.Tx, pokemons []*model.Pokemon) error {
	insertSQL, _, err := postgres.QueryBuilder.
		Insert(evolutionsTable).Columns("pokemon_id", "name", "position").
		Values(0, "", 0).ToSql()
	if err != nil {
		return fmt.Errorf("build evolutions insert: %w", err)
	}

	argsList := make([][]any, 0)
	for _, p := range pokemons {
		for _, e := range p.Evolutions {
			argsList = append(argsList, []any{p.ID, e.Name, e.Position})
		}
	}
	if len(argsList) == 0 {
		return nil
	}
	if _, err := tx.ExecBatch(ctx, insertSQL, argsList); err != nil {
		return fmt.Errorf("insert evolutions: %w", err)
	}
	return nil
}

// attachEvolutions loads the evolution lines for the given pokemons in one
// query and distributes them in position order.
func (d *PokemonDAO) attachEvolutions(ctx context.Context, pokemons []*model.Pokemon) error {
	if len(pokemons) == 0 {
		return nil
	}
	ids := make([]int, len(pokemons))
	byID := make(map[int]*model.Pokemon, len(pokemons))
	for i, p := range pokemons {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Evolutions = []model.Evolution{}
	}

	sql, args, err := postgres.QueryBuilder.
		Select("id", "pokemon_id", "name", "position").From(evolutionsTable).
		Where(squirrel.Eq{"pokemon_id": ids}).OrderBy("pokemon_id", "position").ToSql()
	if err != nil {
		return fmt.Errorf("build evolutions query: %w", err)
	}

	evolutions, err := postgres.QueryAll[model.Evolution](d.db, ctx, sql, args...)
	if err != nil {
		return err
	}
	for _, e := range evolutions {
		if p, ok := byID[e.PokemonID]; ok {
			p.Evolutions = append(p.Evolutions, *e)
		}
	}
	return nil
}
