package schema

import (
	"context"
	"fmt"

	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/logger"
)

// statements create the full schema. Order matters: captures reference
// trainers and pokemons.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS pokemons (
		id              INTEGER PRIMARY KEY,
		name            TEXT    NOT NULL,
		height          INTEGER NOT NULL DEFAULT 0,
		weight          INTEGER NOT NULL DEFAULT 0,
		base_experience INTEGER NOT NULL DEFAULT 0,
		sprite_base64   TEXT    NOT NULL DEFAULT '',
		hash            TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS evolutions (
		id         BIGSERIAL PRIMARY KEY,
		pokemon_id INTEGER NOT NULL REFERENCES pokemons(id) ON DELETE CASCADE,
		name       TEXT    NOT NULL,
		position   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evolutions_pokemon_id ON evolutions (pokemon_id)`,
	`CREATE TABLE IF NOT EXISTS trainers (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT    NOT NULL,
		age  INTEGER NOT NULL,
		cpf  TEXT    NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS captures (
		id          BIGSERIAL   PRIMARY KEY,
		trainer_id  BIGINT      NOT NULL REFERENCES trainers(id) ON DELETE CASCADE,
		pokemon_id  INTEGER     NOT NULL REFERENCES pokemons(id) ON DELETE CASCADE,
		captured_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (trainer_id, pokemon_id)
	)`,
}

// dropStatements tear the schema down in dependency order.
var dropStatements = []string{
	`DROP TABLE IF EXISTS captures`,
	`DROP TABLE IF EXISTS evolutions`,
	`DROP TABLE IF EXISTS trainers`,
	`DROP TABLE IF EXISTS pokemons`,
}

// Apply creates any missing tables. Safe to run on every start.
func Apply(ctx context.Context, db *postgres.Client, l logger.Logger) error {
	log := l.Named("schema")
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	log.Info("schema applied")
	return nil
}

// Reset drops every table and recreates the schema. Destroys all data;
// only reachable behind an explicit config flag.
func Reset(ctx context.Context, db *postgres.Client, l logger.Logger) error {
	log := l.Named("schema")
	for _, stmt := range dropStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	}
	log.Warn("schema dropped, recreating")
	return Apply(ctx, db, l)
}
