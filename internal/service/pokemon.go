package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/halls510/project-list-pokemons/internal/cache"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// PokemonRepo is the catalog read surface the service consumes.
type PokemonRepo interface {
	GetByID(ctx context.Context, id int) (*model.Pokemon, error)
	ListPage(ctx context.Context, limit, offset int) ([]*model.Pokemon, error)
	CountAll(ctx context.Context) (int64, error)
}

// OriginCounter reports the catalog size known to the origin. A limit of
// zero returns only the count.
type OriginCounter interface {
	List(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
}

// RecordFetcher pulls catalog records straight from the origin. Used for
// ids requested before the sync has reached them.
type RecordFetcher interface {
	FetchAll(ctx context.Context, ids []int) []*model.Pokemon
}

// RecordSaver persists origin records fetched outside a sync cycle.
type RecordSaver interface {
	SaveNew(ctx context.Context, pokemons []*model.Pokemon) error
}

// PokemonService serves catalog reads cache-first.
type PokemonService struct {
	repo    PokemonRepo
	fetcher RecordFetcher
	saver   RecordSaver
	origin  OriginCounter
	cache   *cache.Store
	logger  logger.Logger
}

// NewPokemonService creates a PokemonService.
func NewPokemonService(repo PokemonRepo, fetcher RecordFetcher, saver RecordSaver, origin OriginCounter, store *cache.Store, l logger.Logger) *PokemonService {
	return &PokemonService{
		repo:    repo,
		fetcher: fetcher,
		saver:   saver,
		origin:  origin,
		cache:   store,
		logger:  l.Named("service.pokemon"),
	}
}

// GetByID returns one pokemon: cache first, then storage, then a live
// origin fetch that is persisted for the next reader. Returns ErrNotFound
// when the origin does not know the id either.
func (s *PokemonService) GetByID(ctx context.Context, id int) (*model.Pokemon, error) {
	key := cache.KeyPokemon(id)
	if p, ok := cache.GetJSON[model.Pokemon](s.cache, ctx, "pokemon", key); ok {
		return p, nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err == nil {
		s.cache.SetJSON(ctx, key, p, cache.RecordTTL)
		return p, nil
	}
	if !errors.Is(err, postgres.ErrNoRows) {
		return nil, fmt.Errorf("load pokemon %d: %w", id, err)
	}

	return s.fetchThrough(ctx, id, key)
}

// fetchThrough pulls one record from the origin, persists and caches it.
func (s *PokemonService) fetchThrough(ctx context.Context, id int, key string) (*model.Pokemon, error) {
	records := s.fetcher.FetchAll(ctx, []int{id})
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	p := records[0]

	if err := s.saver.SaveNew(ctx, records); err != nil {
		// Persisting is best effort here; the next sync cycle will land it.
		s.logger.Warn("could not persist fetched pokemon", "pokemon_id", id, "error", err)
	}
	s.cache.SetJSON(ctx, key, p, cache.RecordTTL)
	s.cache.Invalidate(ctx, cache.KeyTotalPokemons)
	return p, nil
}

// List returns one page of the catalog ordered by id.
func (s *PokemonService) List(ctx context.Context, page, pageSize int) (*Page[*model.Pokemon], error) {
	page, pageSize = normalizePage(page, pageSize)

	items, err := s.repo.ListPage(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", err)
	}
	total, err := s.Total(ctx)
	if err != nil {
		return nil, err
	}

	return &Page[*model.Pokemon]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

const defaultRandomCount = 10

// Random returns count distinct random records, drawn from the id range
// 1..total through GetByID so ids the sync has not reached yet are pulled
// from the origin on demand. Origin id gaps are skipped.
func (s *PokemonService) Random(ctx context.Context, count int) ([]*model.Pokemon, error) {
	if count < 1 {
		count = defaultRandomCount
	}
	if count > maxPageSize {
		count = maxPageSize
	}

	total, err := s.Total(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNotFound
	}
	if int64(count) > total {
		count = int(total)
	}

	out := make([]*model.Pokemon, 0, count)
	for _, n := range rand.Perm(int(total))[:count] {
		p, err := s.GetByID(ctx, n+1)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Total returns the catalog size: cache, then storage, then the origin
// count for a catalog the sync has not populated yet. Only positive totals
// are cached, so an empty catalog never pins a zero for a day.
func (s *PokemonService) Total(ctx context.Context) (int64, error) {
	if n, ok := cache.GetJSON[int64](s.cache, ctx, "total", cache.KeyTotalPokemons); ok {
		return *n, nil
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pokemons: %w", err)
	}
	if total == 0 {
		resp, err := s.origin.List(ctx, 0, 0)
		if err != nil {
			s.logger.Warn("origin count unavailable", "error", err)
		} else {
			total = int64(resp.Count)
		}
	}

	if total > 0 {
		s.cache.SetJSON(ctx, cache.KeyTotalPokemons, total, cache.TotalTTL)
	}
	return total, nil
}
