package syncer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/halls510/project-list-pokemons/internal/metrics"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// Origin is the slice of the PokeAPI client the syncer consumes.
type Origin interface {
	List(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	Detail(ctx context.Context, id int) (*pokeapi.Detail, error)
	Species(ctx context.Context, url string) (*pokeapi.Species, error)
	EvolutionChain(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
}

// Sprites resolves sprite URLs to base64 payloads, falling back to a
// default asset instead of failing.
type Sprites interface {
	FetchBase64(ctx context.Context, url string, pokemonID int) string
}

var (
	_ Origin  = (*pokeapi.Client)(nil)
	_ Sprites = (*pokeapi.SpriteFetcher)(nil)
)

// DetailFetcher assembles full catalog records from the origin.
type DetailFetcher struct {
	origin      Origin
	sprites     Sprites
	concurrency int
	logger      logger.Logger
}

// NewDetailFetcher creates a fetcher running at most concurrency
// simultaneous origin conversations. A concurrency of zero or less
// leaves the batch unbounded, one goroutine per id in the window.
func NewDetailFetcher(origin Origin, sprites Sprites, concurrency int, l logger.Logger) *DetailFetcher {
	return &DetailFetcher{
		origin:      origin,
		sprites:     sprites,
		concurrency: concurrency,
		logger:      l.Named("syncer.fetcher"),
	}
}

// FetchAll builds records for the given ids concurrently. A failing id is
// logged and dropped; it does not abort the batch and will be retried on
// the next cycle. Results keep the input order.
func (f *DetailFetcher) FetchAll(ctx context.Context, ids []int) []*model.Pokemon {
	slots := make([]*model.Pokemon, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := f.fetchOne(gctx, id)
			if err != nil {
				metrics.SyncFetchFailures.Inc()
				f.logger.Warn("skipping pokemon, fetch failed", "pokemon_id", id, "error", err)
				return nil
			}
			slots[i] = p
			return nil
		})
	}
	g.Wait()

	out := make([]*model.Pokemon, 0, len(ids))
	for _, p := range slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// fetchOne assembles a single record: detail, sprite, evolution line and
// fingerprint.
func (f *DetailFetcher) fetchOne(ctx context.Context, id int) (*model.Pokemon, error) {
	detail, err := f.origin.Detail(ctx, id)
	if err != nil {
		return nil, err
	}

	sprite := f.sprites.FetchBase64(ctx, detail.Sprites.FrontDefault, id)

	names, err := f.evolutionLine(ctx, detail.Species.URL)
	if err != nil {
		return nil, err
	}

	evolutions := make([]model.Evolution, len(names))
	for i, name := range names {
		evolutions[i] = model.Evolution{PokemonID: id, Name: name, Position: i + 1}
	}

	return &model.Pokemon{
		ID:             detail.ID,
		Name:           detail.Name,
		Height:         detail.Height,
		Weight:         detail.Weight,
		BaseExperience: detail.BaseExperience,
		SpriteBase64:   sprite,
		Hash:           Fingerprint(detail.Name, sprite, names),
		Evolutions:     evolutions,
	}, nil
}

// evolutionLine resolves the species URL to the ordered evolution names.
// A pokemon without a species or chain link has an empty line.
func (f *DetailFetcher) evolutionLine(ctx context.Context, speciesURL string) ([]string, error) {
	if speciesURL == "" {
		return nil, nil
	}
	species, err := f.origin.Species(ctx, speciesURL)
	if err != nil {
		return nil, err
	}
	if species.EvolutionChain.URL == "" {
		return nil, nil
	}
	chain, err := f.origin.EvolutionChain(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, err
	}
	return pokeapi.WalkChain(&chain.Chain), nil
}
