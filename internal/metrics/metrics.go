package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for every metric exported by this service.
const namespace = "pokedex"

var (
	// CacheHits counts cache-aside reads answered from Redis, by entity.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Cache reads answered from Redis.",
	}, []string{"entity"})

	// CacheMisses counts cache-aside reads that fell through to storage.
	// Cache backend errors count as misses: the store fails open.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Cache reads that fell through to storage.",
	}, []string{"entity"})

	// CacheErrors counts backend failures swallowed by the fail-open store.
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Cache backend failures, by operation.",
	}, []string{"op"})

	// SyncCycles counts reconciliation cycles by outcome.
	SyncCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_cycles_total",
		Help:      "Catalog reconciliation cycles, by outcome.",
	}, []string{"outcome"})

	// SyncCyclesSkipped counts trigger ticks rejected by the overlap guard.
	SyncCyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_cycles_skipped_total",
		Help:      "Sync triggers skipped because a cycle was already running.",
	})

	// SyncPokemonsInserted counts catalog records inserted by sync.
	SyncPokemonsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_pokemons_inserted_total",
		Help:      "Catalog records inserted by reconciliation.",
	})

	// SyncPokemonsUpdated counts catalog records rewritten by sync.
	SyncPokemonsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_pokemons_updated_total",
		Help:      "Catalog records rewritten by reconciliation.",
	})

	// SyncFetchFailures counts per-id origin fetches that were skipped.
	SyncFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_fetch_failures_total",
		Help:      "Origin detail fetches that failed and were skipped.",
	})

	// SyncDuration observes wall time per reconciliation cycle.
	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_cycle_duration_seconds",
		Help:      "Wall time of one reconciliation cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	// CapturesRegistered counts successful capture registrations.
	CapturesRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "captures_registered_total",
		Help:      "Capture registrations accepted.",
	})
)
