// Package config assembles the full service configuration from file and
// environment.
package config

import (
	"fmt"

	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/internal/syncer"
	"github.com/halls510/project-list-pokemons/pkg/config"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/database/redis"
	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/security"
	"github.com/halls510/project-list-pokemons/pkg/web"
)

// EnvPrefix is the environment variable prefix, e.g. POKEDEX_SERVER_PORT.
const EnvPrefix = "POKEDEX"

// PokeAPIConfig locates the catalog origin.
type PokeAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// DefaultSpritePath points at the fallback sprite asset. Empty uses
	// the built-in placeholder.
	DefaultSpritePath string `mapstructure:"default_sprite_path"`
}

// SchemaConfig controls schema bootstrap.
type SchemaConfig struct {
	// ResetOnStart drops and recreates every table at startup. Destroys
	// all data; development only.
	ResetOnStart bool `mapstructure:"reset_on_start"`
}

// AuthConfig lists the API clients allowed to request tokens.
type AuthConfig struct {
	Clients map[string]string `mapstructure:"clients"`
}

// Config is the whole service configuration.
type Config struct {
	Logger   *logger.Config      `mapstructure:"logger"`
	Server   *web.Config         `mapstructure:"server"`
	Postgres *postgres.Config    `mapstructure:"postgres"`
	Redis    *redis.Config       `mapstructure:"redis"`
	JWT      *security.JWTConfig `mapstructure:"jwt"`
	Sync     *syncer.Config      `mapstructure:"sync"`
	PokeAPI  PokeAPIConfig       `mapstructure:"pokeapi"`
	Schema   SchemaConfig        `mapstructure:"schema"`
	Auth     AuthConfig          `mapstructure:"auth"`
}

// Default returns the configuration used when file and environment are
// silent.
func Default() *Config {
	return &Config{
		Logger:   logger.DefaultConfig(),
		Server:   web.DefaultConfig(),
		Postgres: postgres.DefaultConfig(),
		Redis:    redis.DefaultConfig(),
		JWT:      security.DefaultJWTConfig(),
		Sync:     syncer.DefaultConfig(),
		PokeAPI:  PokeAPIConfig{BaseURL: pokeapi.DefaultBaseURL},
	}
}

// Load reads path (optional) and the POKEDEX_* environment on top of the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	m := config.NewManager()
	m.BindEnv(EnvPrefix)
	if path != "" {
		if err := m.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := m.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Postgres.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if c.JWT.SecretKey == "" {
		return security.ErrMissingSecret
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("config: sync interval must be positive")
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("config: sync batch size must be positive")
	}
	return nil
}
