package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "citiesmanager/internal/app/http"
	"citiesmanager/internal/config"
	"citiesmanager/internal/lib/jwt"
	"citiesmanager/internal/repository"
	"citiesmanager/internal/services/auth"
	citysvc "citiesmanager/internal/services/city_service"
	tokensvc "citiesmanager/internal/services/token_service"
	"citiesmanager/internal/storage/inmemory"
	"citiesmanager/internal/storage/postgresql"
	redisapp "citiesmanager/internal/storage/redis"
	httprouters "citiesmanager/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	closers []func()
}

// New assembles the application for the configured storage driver. Migrations
// run before the pool is opened.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	a := &App{}

	var (
		users    repository.UserRepository
		cities   repository.CityRepository
		checkers []httprouters.HealthChecker
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		if err := postgresql.Migrate(ctx, cfg.Storage.DSN); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		storage, err := postgresql.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, storage.Stop)

		repo := repository.NewRepository(storage.Pool())
		users, cities = repo.User, repo.City
		checkers = append(checkers, storage)
	default:
		storage := inmemory.New(inmemory.SeedCities...)
		users, cities = storage, storage
		checkers = append(checkers, storage)
	}

	var credOpts []repository.CredentialOption
	if cfg.RefreshToken.Store == config.RefreshStoreRedis {
		client, err := redisapp.Connect(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })

		credOpts = append(credOpts, repository.WithTokenRepository(repository.NewRedisTokenRepo(client)))
		checkers = append(checkers, client)
	}

	store := repository.NewCredentialStore(users, credOpts...)
	signer := jwt.New(cfg.JWT)

	tokenService := tokensvc.NewTokenService(log, signer, store, cfg.RefreshToken.TTL)
	authService := auth.New(log, store, signer, tokenService)
	cityService := citysvc.NewCityService(log, cities)

	routers := httprouters.NewRouter(log, authService, cityService, signer, checkers...)

	a.HTTPServer = httpapp.New(log, cfg, signer, routers)
	a.HTTPServer.BuildRouters()

	return a, nil
}

// Close releases storage connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
