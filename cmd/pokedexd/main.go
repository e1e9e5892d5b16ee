// Command pokedexd runs the pokemon catalog service: a periodic origin
// sync plus the HTTP API over PostgreSQL and Redis.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/halls510/project-list-pokemons/internal/cache"
	"github.com/halls510/project-list-pokemons/internal/config"
	"github.com/halls510/project-list-pokemons/internal/dao"
	"github.com/halls510/project-list-pokemons/internal/handler"
	"github.com/halls510/project-list-pokemons/internal/pokeapi"
	"github.com/halls510/project-list-pokemons/internal/schema"
	"github.com/halls510/project-list-pokemons/internal/service"
	"github.com/halls510/project-list-pokemons/internal/syncer"
	"github.com/halls510/project-list-pokemons/pkg/database/postgres"
	"github.com/halls510/project-list-pokemons/pkg/database/redis"
	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/security"
	"github.com/halls510/project-list-pokemons/pkg/web"
	"github.com/halls510/project-list-pokemons/pkg/web/validator"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pokedexd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer log.Sync()
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage backends.
	db, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()
	if err := rdb.Ping(ctx); err != nil {
		// Cache outage is not fatal: the store fails open.
		log.Warn("redis unreachable at startup, running degraded", "error", err)
	}

	if cfg.Schema.ResetOnStart {
		if err := schema.Reset(ctx, db, log); err != nil {
			return err
		}
	} else if err := schema.Apply(ctx, db, log); err != nil {
		return err
	}

	// Origin client and sprite fallback.
	origin := pokeapi.NewClient(pokeapi.WithBaseURL(cfg.PokeAPI.BaseURL))
	spriteAsset := pokeapi.BuiltinDefaultSprite()
	if cfg.PokeAPI.DefaultSpritePath != "" {
		raw, err := os.ReadFile(cfg.PokeAPI.DefaultSpritePath)
		if err != nil {
			return fmt.Errorf("default sprite: %w", err)
		}
		spriteAsset = raw
	}
	sprites := pokeapi.NewSpriteFetcher(origin, spriteAsset, log)

	// Sync pipeline.
	store := cache.NewStore(rdb, log)
	pokemonDAO := dao.NewPokemonDAO(db, log)
	catalog := syncer.NewCatalogStore(db, pokemonDAO)
	fetcher := syncer.NewDetailFetcher(origin, sprites, cfg.Sync.Concurrency, log)
	coordinator := syncer.NewCoordinator(origin, fetcher, catalog, store, cfg.Sync, log)

	// Services.
	trainerDAO := dao.NewTrainerDAO(db, log)
	captureDAO := dao.NewCaptureDAO(db, log)
	pokemonSvc := service.NewPokemonService(pokemonDAO, fetcher, catalog, origin, store, log)
	trainerSvc := service.NewTrainerService(trainerDAO, store, log)
	captureSvc := service.NewCaptureService(captureDAO, trainerDAO, pokemonDAO, log)

	jwt, err := security.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}

	// HTTP surface.
	validator.Init()
	server := web.NewServer(cfg.Server, log)
	handler.Register(server.Router(), &handler.Deps{
		Pokemons: handler.NewPokemonHandler(pokemonSvc, log),
		Trainers: handler.NewTrainerHandler(trainerSvc, log),
		Captures: handler.NewCaptureHandler(captureSvc, log),
		Auth:     handler.NewAuthHandler(jwt, cfg.Auth.Clients, log),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": db,
			"redis":    rdb,
		}, log),
		JWT:    jwt,
		Logger: log,
	})

	if err := coordinator.Start(ctx); err != nil {
		return err
	}

	return server.Run(ctx)
}
