package service

import (
	"context"
	"time"

	"github.com/halls510/project-list-pokemons/internal/cache"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/database/redis"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// memBackend is an in-memory cache.Backend.
type memBackend struct {
	data map[string]string
	err  error
}

func newMemBackend() *memBackend {
	return &memBackend{data: map[string]string{}}
}

func (b *memBackend) Get(_ context.Context, key string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	val, ok := b.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return val, nil
}

func (b *memBackend) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if b.err != nil {
		return b.err
	}
	b.data[key] = string(value.([]byte))
	return nil
}

func (b *memBackend) Del(_ context.Context, keys ...string) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	for _, k := range keys {
		delete(b.data, k)
	}
	return int64(len(keys)), nil
}

func newTestCache() (*cache.Store, *memBackend) {
	b := newMemBackend()
	return cache.NewStore(b, logger.Noop()), b
}

// fakePokemonRepo serves from a map.
type fakePokemonRepo struct {
	pokemons map[int]*model.Pokemon
	getCalls int
	err      error
}

func (r *fakePokemonRepo) GetByID(_ context.Context, id int) (*model.Pokemon, error) {
	r.getCalls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.pokemons[id]
	if !ok {
		return nil, postgres.ErrNoRows
	}
	return p, nil
}

func (r *fakePokemonRepo) ListPage(_ context.Context, limit, offset int) ([]*model.Pokemon, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.Pokemon, 0)
	for id := offset + 1; id <= offset+limit; id++ {
		if p, ok := r.pokemons[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePokemonRepo) CountAll(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.pokemons)), nil
}

func (r *fakePokemonRepo) Exists(_ context.Context, id int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.pokemons[id]
	return ok, nil
}

// fakeFetcher serves origin records from a map.
type fakeFetcher struct {
	records map[int]*model.Pokemon
}

func (f *fakeFetcher) FetchAll(_ context.Context, ids []int) []*model.Pokemon {
	out := make([]*model.Pokemon, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.records[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// fakeSaver records saved batches.
type fakeSaver struct {
	saved []*model.Pokemon
	err   error
}

func (s *fakeSaver) SaveNew(_ context.Context, pokemons []*model.Pokemon) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, pokemons...)
	return nil
}

// fakeOriginCounter reports a fixed origin catalog size.
type fakeOriginCounter struct {
	count int
	err   error
}

func (o *fakeOriginCounter) List(_ context.Context, _, _ int) (*pokeapi.ListResponse, error) {
	if o.err != nil {
		return nil, o.err
	}
	return &pokeapi.ListResponse{Count: o.count}, nil
}
