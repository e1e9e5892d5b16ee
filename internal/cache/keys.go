package cache

import (
	"fmt"
	"time"
)

// Key layout. Records expire quickly so reads pick up sync changes; the
// total count is stable and can live for a day.
const (
	KeyTotalPokemons = "total_pokemons"

	RecordTTL = 10 * time.Minute
	TotalTTL  = 24 * time.Hour
)

// KeyPokemon returns the cache key for one pokemon record.
func KeyPokemon(id int) string {
	return fmt.Sprintf("pokemon_%d", id)
}

// KeyTrainer returns the cache key for one trainer record.
func KeyTrainer(id int64) string {
	return fmt.Sprintf("trainer_%d", id)
}
