package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecomstore/commerce-api/internal/api"
	"github.com/ecomstore/commerce-api/internal/api/metrics"
	"github.com/ecomstore/commerce-api/internal/core/service"
	mongodb "github.com/ecomstore/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ecomstore/commerce-api/internal/infrastructure/db/redis"
	"github.com/ecomstore/commerce-api/internal/infrastructure/queue"
	"github.com/ecomstore/commerce-api/internal/pkg/config"
	"github.com/ecomstore/commerce-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Bootstrap seeding ---
	// Must complete before the listener starts: no request may authenticate
	// against roles or accounts that do not exist yet. Any failure is fatal.
	seeder := service.NewSeeder(
		mongodb.NewRoleRepository(db),
		mongodb.NewUserRepository(db),
		service.DefaultSeedData(),
		log,
	)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap seeding failed")
	}
	metrics.SeedRunsTotal.Inc()

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, log, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
