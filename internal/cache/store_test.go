package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/halls510/project-list-pokemons/pkg/database/redis"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

type fakeBackend struct {
	data    map[string]string
	getErr  error
	setErr  error
	delErr  error
	deleted []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: map[string]string{}}
}

func (f *fakeBackend) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return val, nil
}

func (f *fakeBackend) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = string(value.([]byte))
	return nil
}

func (f *fakeBackend) Del(_ context.Context, keys ...string) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	f.deleted = append(f.deleted, keys...)
	for _, k := range keys {
		delete(f.data, k)
	}
	return int64(len(keys)), nil
}

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newFakeBackend(), logger.Noop())

	s.SetJSON(ctx, KeyPokemon(25), record{ID: 25, Name: "pikachu"}, RecordTTL)

	got, ok := GetJSON[record](s, ctx, "pokemon", KeyPokemon(25))
	if !ok {
		t.Fatal("GetJSON() ok = false, want hit")
	}
	if got.Name != "pikachu" {
		t.Errorf("Name = %q, want pikachu", got.Name)
	}
}

func TestStoreMiss(t *testing.T) {
	s := NewStore(newFakeBackend(), logger.Noop())

	if _, ok := GetJSON[record](s, context.Background(), "pokemon", KeyPokemon(1)); ok {
		t.Error("GetJSON() ok = true for absent key, want miss")
	}
}

func TestStoreBackendErrorIsMiss(t *testing.T) {
	b := newFakeBackend()
	b.getErr = errors.New("connection refused")
	s := NewStore(b, logger.Noop())

	if _, ok := GetJSON[record](s, context.Background(), "pokemon", KeyPokemon(1)); ok {
		t.Error("GetJSON() ok = true on backend error, want miss")
	}
}

func TestStoreCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.data[KeyPokemon(1)] = "{not json"
	s := NewStore(b, logger.Noop())

	if _, ok := GetJSON[record](s, ctx, "pokemon", KeyPokemon(1)); ok {
		t.Error("GetJSON() ok = true for corrupt entry, want miss")
	}
}

func TestStoreSetErrorIsSwallowed(t *testing.T) {
	b := newFakeBackend()
	b.setErr = errors.New("connection refused")
	s := NewStore(b, logger.Noop())

	// Must not panic or surface the failure.
	s.SetJSON(context.Background(), KeyPokemon(1), record{ID: 1}, RecordTTL)
}

func TestStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	s := NewStore(b, logger.Noop())

	s.SetJSON(ctx, KeyPokemon(1), record{ID: 1}, RecordTTL)
	s.SetJSON(ctx, KeyTotalPokemons, 151, TotalTTL)
	s.Invalidate(ctx, KeyPokemon(1), KeyTotalPokemons)

	if _, ok := GetJSON[record](s, ctx, "pokemon", KeyPokemon(1)); ok {
		t.Error("record survived invalidation")
	}
	if len(b.deleted) != 2 {
		t.Errorf("deleted %d keys, want 2", len(b.deleted))
	}
}

func TestStoreInvalidateNoKeys(t *testing.T) {
	b := newFakeBackend()
	b.delErr = errors.New("should not be called")
	s := NewStore(b, logger.Noop())

	s.Invalidate(context.Background())
	if len(b.deleted) != 0 {
		t.Errorf("deleted = %v, want none", b.deleted)
	}
}
