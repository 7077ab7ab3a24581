package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-rest-api/internal/adapter"
	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/handler"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/metrics"
	"github.com/MKhiriev/go-rest-api/internal/resource"
	"github.com/MKhiriev/go-rest-api/internal/server"
	"github.com/MKhiriev/go-rest-api/internal/service"
	"github.com/MKhiriev/go-rest-api/internal/store"
	"github.com/MKhiriev/go-rest-api/internal/token"
	"github.com/MKhiriev/go-rest-api/internal/validators"
	"github.com/MKhiriev/go-rest-api/internal/workers"
	"github.com/MKhiriev/go-rest-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("rest-api-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.WithLevel(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	secret, generated, err := token.ResolveSecret(cfg.App.TokenSignKey, cfg.App.TokenSignKeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving token signing key")
	}
	if generated {
		log.Warn().Str("file", cfg.App.TokenSignKeyFile).Msg("token signing key generated")
	}
	tokens, err := token.NewService(token.Config{
		Secret:   secret,
		Issuer:   cfg.App.TokenIssuer,
		Audience: cfg.App.TokenAudience,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token service")
	}

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	denylist, closeDenylist := newDenylist(ctx, cfg.Storage.Redis, log)
	defer closeDenylist()

	m := metrics.New(nil)

	services := service.NewServices(service.Dependencies{
		Registry:     resource.NewRegistry(cfg.Resources),
		Repositories: store.NewRepositories(db, denylist, log),
		Tokens:       tokens,
		Validator:    validators.NewRecordValidator(),
		Providers:    adapter.NewSocialProviders(cfg.Adapter, log),
		Observer:     m,
		BuildInfo:    buildInfo,
	}, *cfg, log)

	handlers, err := handler.NewHandlers(services, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	go workers.NewWorkers(cfg.Workers, denylist, m, log).Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// newDenylist connects to Redis when a URL is configured and falls back to
// the in-memory denylist otherwise.
func newDenylist(ctx context.Context, cfg config.Redis, log *logger.Logger) (store.Denylist, func()) {
	if cfg.URL == "" {
		log.Info().Msg("token denylist kept in memory")
		return store.NewMemoryDenylist(), func() {}
	}

	denylist, client, err := store.NewRedisDenylistFromURL(cfg.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("error configuring redis denylist")
	}
	if err = client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("error connecting to redis")
	}

	log.Info().Msg("token denylist kept in redis")
	return denylist, func() { _ = client.Close() }
}
