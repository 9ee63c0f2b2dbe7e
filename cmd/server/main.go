package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"tokenbound/internal/account"
	accountmetrics "tokenbound/internal/account/metrics"
	"tokenbound/internal/asset"
	assetcache "tokenbound/internal/asset/cache"
	assetmetrics "tokenbound/internal/asset/metrics"
	"tokenbound/internal/chain"
	"tokenbound/internal/derive"
	"tokenbound/internal/licensing"
	"tokenbound/internal/platform/config"
	"tokenbound/internal/platform/httpserver"
	"tokenbound/internal/platform/logger"
	"tokenbound/internal/platform/postgres"
	"tokenbound/internal/platform/redis"
	"tokenbound/internal/royalty"
	httptransport "tokenbound/internal/transport/http"
	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/events"
	"tokenbound/pkg/platform/events/kafka"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		fatal(log, "invalid configuration", err)
	}

	registryID, err := domain.ParseAddress(cfg.RegistryID)
	if err != nil {
		fatal(log, "invalid REGISTRY_ID", err)
	}
	implementationID, err := domain.ParseAddress(cfg.ImplementationID)
	if err != nil {
		fatal(log, "invalid IMPLEMENTATION_ID", err)
	}
	deriver := derive.New(registryID, implementationID, derive.DefaultSalt)

	ctx := context.Background()

	var sink events.Sink = events.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := kafka.NewSink(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			fatal(log, "kafka sink setup failed", err)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("publishing events to kafka", "topic", cfg.KafkaTopic)
	}
	publisher := events.NewPublisher(sink,
		events.WithAsyncBuffer(cfg.EventBuffer),
		events.WithLogger(log),
	)
	defer publisher.Close()

	var accountStore account.Store = account.NewInMemoryStore()
	var assetStore asset.Store = asset.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			fatal(log, "database open failed", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			fatal(log, "database ping failed", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			fatal(log, "schema setup failed", err)
		}
		accountStore = account.NewPostgres(db)
		assetStore = asset.NewPostgres(db)
		log.Info("using postgres stores")
	}

	rdb, err := redis.New(cfg.RedisURL)
	if err != nil {
		fatal(log, "redis setup failed", err)
	}
	if rdb != nil {
		defer rdb.Close()
		assetStore = assetcache.New(assetStore, rdb.Client, cfg.AssetCacheTTL, log)
		log.Info("asset lookup cache enabled", "ttl", cfg.AssetCacheTTL.String())
	}

	ownership := chain.MockOwnershipClient{}
	if cfg.OwnerAddress != "" {
		owner, err := domain.ParseAddress(cfg.OwnerAddress)
		if err != nil {
			fatal(log, "invalid OWNER_ADDRESS", err)
		}
		ownership.FixedOwner = owner
	}

	accounts := account.NewService(deriver, accountStore, publisher, log, accountmetrics.New())
	assets := asset.NewService(
		accounts,
		assetStore,
		ownership,
		asset.Naming{Label: cfg.AssetNameLabel, BaseURI: cfg.AssetBaseURI},
		publisher,
		log,
		assetmetrics.New(),
	)
	derivatives := licensing.NewService(assets, chain.MockLicensingClient{}, log)
	royalties := royalty.NewService(cfg.RoyaltySnapshotInterval, log)

	handler := httptransport.NewHandler(assets, derivatives, royalties, log)
	router := httptransport.NewRouter(handler, cfg.AdminToken)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting registry server", "addr", cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-errCh:
		fatal(log, "server error", err)
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal(log, "graceful shutdown failed", err)
	}
	log.Info("server stopped")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
