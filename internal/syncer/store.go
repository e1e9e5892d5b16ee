package syncer

import (
	"context"

	"github.com/halls510/project-list-pokemons/internal/dao"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
)

// CatalogStore is the persistence surface the coordinator drives. Each
// save is atomic: a failed batch leaves the catalog untouched.
type CatalogStore interface {
	ListAllIDs(ctx context.Context) (map[int]struct{}, error)
	ListHashes(ctx context.Context, ids []int) (map[int]string, error)
	SaveNew(ctx context.Context, pokemons []*model.Pokemon) error
	SaveChanged(ctx context.Context, pokemons []*model.Pokemon) error
}

// catalogStore adapts PokemonDAO to CatalogStore, wrapping each save in
// one transaction.
type catalogStore struct {
	db  *postgres.Client
	dao *dao.PokemonDAO
}

// NewCatalogStore wraps d so batch saves run transactionally on db.
func NewCatalogStore(db *postgres.Client, d *dao.PokemonDAO) CatalogStore {
	return &catalogStore{db: db, dao: d}
}

func (s *catalogStore) ListAllIDs(ctx context.Context) (map[int]struct{}, error) {
	return s.dao.ListAllIDs(ctx)
}

func (s *catalogStore) ListHashes(ctx context.Context, ids []int) (map[int]string, error) {
	return s.dao.ListHashes(ctx, ids)
}

func (s *catalogStore) SaveNew(ctx context.Context, pokemons []*model.Pokemon) error {
	return s.db.WithTx(ctx, func(tx postgres.Tx) error {
		return s.dao.InsertBatch(ctx, tx, pokemons)
	})
}

func (s *catalogStore) SaveChanged(ctx context.Context, pokemons []*model.Pokemon) error {
	return s.db.WithTx(ctx, func(tx postgres.Tx) error {
		return s.dao.UpdateBatch(ctx, tx, pokemons)
	})
}
