package model

import "time"

// Capture records that a trainer claimed a pokemon. The (trainer, pokemon)
// pair is unique; rows are immutable once written.
type Capture struct {
	ID         int64     `db:"id" json:"id"`
	TrainerID  int64     `db:"trainer_id" json:"trainer_id"`
	PokemonID  int       `db:"pokemon_id" json:"pokemon_id"`
	CapturedAt time.Time `db:"captured_at" json:"captured_at"`
}

// CaptureDetail is a capture joined with the names of both sides, used by
// the listing endpoints.
type CaptureDetail struct {
	ID          int64     `db:"id" json:"id"`
	TrainerID   int64     `db:"trainer_id" json:"trainer_id"`
	TrainerName string    `db:"trainer_name" json:"trainer_name"`
	PokemonID   int       `db:"pokemon_id" json:"pokemon_id"`
	PokemonName string    `db:"pokemon_name" json:"pokemon_name"`
	CapturedAt  time.Time `db:"captured_at" json:"captured_at"`
}
