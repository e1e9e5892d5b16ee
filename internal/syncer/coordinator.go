package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/halls510/project-list-pokemons/internal/cache"
	"github.com/halls510/project-list-pokemons/internal/metrics"
	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// ErrCycleRunning a trigger fired while a cycle was still in flight.
var ErrCycleRunning = errors.New("syncer: cycle already running")

const (
	devBatchSize = 10
	devIDCap     = 50
)

// Config tunes the reconciliation loop.
type Config struct {
	// Interval between scheduled cycles. The first cycle runs at startup.
	Interval time.Duration `mapstructure:"interval"`
	// BatchSize is the index window size in production mode.
	BatchSize int `mapstructure:"batch_size"`
	// Concurrency caps simultaneous origin fetches. Zero means one
	// goroutine per id in the window.
	Concurrency int `mapstructure:"concurrency"`
	// DevMode shrinks windows and stops after the first 50 ids.
	DevMode bool `mapstructure:"dev_mode"`
}

// DefaultConfig returns production settings.
func DefaultConfig() *Config {
	return &Config{
		Interval:  24 * time.Hour,
		BatchSize: 100,
	}
}

// Fetcher assembles catalog records for a set of ids, dropping failures.
type Fetcher interface {
	FetchAll(ctx context.Context, ids []int) []*model.Pokemon
}

// Invalidator removes cache keys made stale by a write.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// Coordinator runs the periodic catalog reconciliation. At most one
// cycle is in flight per Coordinator; overlapping triggers are skipped.
type Coordinator struct {
	origin  Origin
	fetcher Fetcher
	store   CatalogStore
	cache   Invalidator
	cfg     *Config
	logger  logger.Logger

	running atomic.Bool
}

// NewCoordinator creates a Coordinator. A nil cfg uses DefaultConfig.
func NewCoordinator(origin Origin, fetcher Fetcher, store CatalogStore, inv Invalidator, cfg *Config, l logger.Logger) *Coordinator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Coordinator{
		origin:  origin,
		fetcher: fetcher,
		store:   store,
		cache:   inv,
		cfg:     cfg,
		logger:  l.Named("syncer"),
	}
}

// Start runs one cycle immediately and then schedules further cycles at
// the configured interval. It returns after starting the scheduler; the
// scheduler stops when ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) error {
	sched := cron.New()
	spec := fmt.Sprintf("@every %s", c.cfg.Interval)
	if _, err := sched.AddFunc(spec, func() {
		if err := c.RunCycle(ctx); err != nil && !errors.Is(err, ErrCycleRunning) {
			c.logger.Error("scheduled sync cycle failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule sync: %w", err)
	}

	go func() {
		if err := c.RunCycle(ctx); err != nil {
			c.logger.Error("startup sync cycle failed", "error", err)
		}
	}()

	sched.Start()
	go func() {
		<-ctx.Done()
		sched.Stop()
	}()

	c.logger.Info("sync scheduler started", "interval", c.cfg.Interval.String())
	return nil
}

// RunCycle executes one reconciliation cycle. A cycle already in flight
// makes the call return ErrCycleRunning without any work.
func (c *Coordinator) RunCycle(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		metrics.SyncCyclesSkipped.Inc()
		c.logger.Warn("sync trigger skipped, cycle already running")
		return ErrCycleRunning
	}
	defer c.running.Store(false)

	start := time.Now()
	c.logger.Info("sync cycle started")

	inserted, updated, err := c.cycle(ctx)

	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SyncCycles.WithLabelValues("error").Inc()
		c.logger.Error("sync cycle failed", "error", err, "elapsed", time.Since(start).String())
		return err
	}

	metrics.SyncCycles.WithLabelValues("success").Inc()
	c.logger.Info("sync cycle finished",
		"inserted", inserted, "updated", updated, "elapsed", time.Since(start).String())
	return nil
}

// cycle walks the origin index window by window, inserting unknown ids
// and rewriting records whose fingerprint moved.
func (c *Coordinator) cycle(ctx context.Context) (inserted, updated int, err error) {
	existing, err := c.store.ListAllIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list catalog ids: %w", err)
	}

	batch := c.cfg.BatchSize
	if c.cfg.DevMode {
		batch = devBatchSize
	}

	offset, seen := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return inserted, updated, err
		}

		resp, err := c.origin.List(ctx, batch, offset)
		if err != nil {
			return inserted, updated, fmt.Errorf("list origin window at offset %d: %w", offset, err)
		}
		if len(resp.Results) == 0 {
			break
		}

		window := c.windowIDs(resp.Results)
		if c.cfg.DevMode && seen+len(window) > devIDCap {
			window = window[:devIDCap-seen]
		}
		seen += len(window)

		newIDs, updateCandidates := Diff(window, existing)

		n, err := c.insertNew(ctx, newIDs, existing)
		if err != nil {
			return inserted, updated, err
		}
		inserted += n

		n, err = c.rewriteChanged(ctx, updateCandidates)
		if err != nil {
			return inserted, updated, err
		}
		updated += n

		if c.cfg.DevMode && seen >= devIDCap {
			break
		}
		offset += batch
	}

	return inserted, updated, nil
}

// windowIDs extracts ids from one index page, dropping malformed entries.
func (c *Coordinator) windowIDs(results []pokeapi.ListResult) []int {
	ids := make([]int, 0, len(results))
	for _, r := range results {
		id, err := pokeapi.IDFromURL(r.URL)
		if err != nil {
			c.logger.Warn("skipping malformed index entry", "name", r.Name, "url", r.URL)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// insertNew fetches and stores records for ids absent from the catalog,
// then adds them to the existing set so later windows see them.
func (c *Coordinator) insertNew(ctx context.Context, ids []int, existing map[int]struct{}) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	records := c.fetcher.FetchAll(ctx, ids)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	if err := c.store.SaveNew(ctx, records); err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	// The batch is committed even if the rest of the cycle fails, so the
	// cached total is stale from this point on.
	c.cache.Invalidate(ctx, cache.KeyTotalPokemons)
	for _, p := range records {
		existing[p.ID] = struct{}{}
	}
	metrics.SyncPokemonsInserted.Add(float64(len(records)))
	return len(records), nil
}

// rewriteChanged refetches known ids and rewrites only those whose
// fingerprint differs from the stored one, invalidating their cache keys.
func (c *Coordinator) rewriteChanged(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	records := c.fetcher.FetchAll(ctx, ids)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	stored, err := c.store.ListHashes(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("list stored hashes: %w", err)
	}

	changed := make([]*model.Pokemon, 0)
	for _, p := range records {
		if stored[p.ID] != p.Hash {
			changed = append(changed, p)
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}

	if err := c.store.SaveChanged(ctx, changed); err != nil {
		return 0, fmt.Errorf("update batch: %w", err)
	}

	keys := make([]string, len(changed))
	for i, p := range changed {
		keys[i] = cache.KeyPokemon(p.ID)
	}
	c.cache.Invalidate(ctx, keys...)
	metrics.SyncPokemonsUpdated.Add(float64(len(changed)))
	return len(changed), nil
}
