package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// fakeOrigin serves canned responses and fails on demand.
type fakeOrigin struct {
	count    int
	failIDs  map[int]bool
	pageSize map[int][]int // offset -> ids served
}

func (f *fakeOrigin) List(_ context.Context, limit, offset int) (*pokeapi.ListResponse, error) {
	ids, ok := f.pageSize[offset]
	if !ok {
		return &pokeapi.ListResponse{Count: f.count}, nil
	}
	resp := &pokeapi.ListResponse{Count: f.count}
	for _, id := range ids {
		resp.Results = append(resp.Results, pokeapi.ListResult{
			Name: fmt.Sprintf("pokemon-%d", id),
			URL:  fmt.Sprintf("https://pokeapi.test/api/v2/pokemon/%d/", id),
		})
	}
	return resp, nil
}

func (f *fakeOrigin) Detail(_ context.Context, id int) (*pokeapi.Detail, error) {
	if f.failIDs[id] {
		return nil, errors.New("origin unavailable")
	}
	d := &pokeapi.Detail{ID: id, Name: fmt.Sprintf("pokemon-%d", id), Height: 4, Weight: 60, BaseExperience: 112}
	d.Species.URL = fmt.Sprintf("https://pokeapi.test/api/v2/pokemon-species/%d/", id)
	d.Sprites.FrontDefault = fmt.Sprintf("https://img.test/%d.png", id)
	return d, nil
}

func (f *fakeOrigin) Species(_ context.Context, url string) (*pokeapi.Species, error) {
	s := &pokeapi.Species{}
	s.EvolutionChain.URL = "https://pokeapi.test/api/v2/evolution-chain/1/"
	return s, nil
}

func (f *fakeOrigin) EvolutionChain(_ context.Context, url string) (*pokeapi.EvolutionChain, error) {
	chain := &pokeapi.EvolutionChain{}
	chain.Chain.Species.Name = "stage-one"
	child := pokeapi.ChainNode{}
	child.Species.Name = "stage-two"
	chain.Chain.EvolvesTo = []pokeapi.ChainNode{child}
	return chain, nil
}

type fakeSprites struct{}

func (fakeSprites) FetchBase64(_ context.Context, url string, _ int) string {
	if url == "" {
		return "ZGVmYXVsdA=="
	}
	return "c3ByaXRl"
}

func TestDetailFetcherBuildsRecords(t *testing.T) {
	origin := &fakeOrigin{}
	f := NewDetailFetcher(origin, fakeSprites{}, 3, logger.Noop())

	got := f.FetchAll(context.Background(), []int{1, 2, 3})
	if len(got) != 3 {
		t.Fatalf("FetchAll() returned %d records, want 3", len(got))
	}

	p := got[1]
	if p.ID != 2 || p.Name != "pokemon-2" {
		t.Errorf("record = %+v", p)
	}
	if p.SpriteBase64 != "c3ByaXRl" {
		t.Errorf("sprite = %q", p.SpriteBase64)
	}
	if len(p.Evolutions) != 2 || p.Evolutions[0].Name != "stage-one" || p.Evolutions[1].Position != 2 {
		t.Errorf("evolutions = %+v", p.Evolutions)
	}
	if want := Fingerprint(p.Name, p.SpriteBase64, []string{"stage-one", "stage-two"}); p.Hash != want {
		t.Errorf("hash = %q, want %q", p.Hash, want)
	}
}

func TestDetailFetcherKeepsInputOrder(t *testing.T) {
	f := NewDetailFetcher(&fakeOrigin{}, fakeSprites{}, 8, logger.Noop())

	ids := []int{9, 3, 7, 1, 5}
	got := f.FetchAll(context.Background(), ids)
	if len(got) != len(ids) {
		t.Fatalf("FetchAll() returned %d records, want %d", len(got), len(ids))
	}
	for i, p := range got {
		if p.ID != ids[i] {
			t.Errorf("got[%d].ID = %d, want %d", i, p.ID, ids[i])
		}
	}
}

func TestDetailFetcherUnboundedWhenNoCap(t *testing.T) {
	f := NewDetailFetcher(&fakeOrigin{}, fakeSprites{}, 0, logger.Noop())

	ids := make([]int, 100)
	for i := range ids {
		ids[i] = i + 1
	}
	got := f.FetchAll(context.Background(), ids)
	if len(got) != len(ids) {
		t.Fatalf("FetchAll() returned %d records, want %d", len(got), len(ids))
	}
}

func TestDetailFetcherDropsFailedIDs(t *testing.T) {
	origin := &fakeOrigin{failIDs: map[int]bool{2: true}}
	f := NewDetailFetcher(origin, fakeSprites{}, 3, logger.Noop())

	got := f.FetchAll(context.Background(), []int{1, 2, 3})
	if len(got) != 2 {
		t.Fatalf("FetchAll() returned %d records, want 2", len(got))
	}
	for _, p := range got {
		if p.ID == 2 {
			t.Error("failed id survived into the results")
		}
	}
}
