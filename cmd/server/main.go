// @title                       Solosphere Jobs API
// @version                     1.0
// @description                 Job marketplace backend: job listings, bids and cookie-based sessions.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        token
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/solosphere/jobs-api/internal/api"
	"github.com/solosphere/jobs-api/internal/core/ports"
	"github.com/solosphere/jobs-api/internal/core/service"
	"github.com/solosphere/jobs-api/internal/infrastructure/config"
	mongodb "github.com/solosphere/jobs-api/internal/infrastructure/db/mongo"
	redisdb "github.com/solosphere/jobs-api/internal/infrastructure/db/redis"
	"github.com/solosphere/jobs-api/internal/infrastructure/queue"
	"github.com/solosphere/jobs-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobs-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	jobRepo := mongodb.NewJobRepository(db, cfg.Mongo.JobsCollection)
	bidRepo := mongodb.NewBidRepository(db, cfg.Mongo.BidsCollection)

	if err := jobRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create job indexes")
	}
	// Fails when existing data already holds duplicate (email, title) bids.
	if err := bidRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create bid indexes")
	}

	// --- Redis (optional) ---
	deps := api.Deps{
		Mongo:          client,
		Production:     cfg.IsProduction(),
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Log:            logger.Component("http"),
	}

	var denylist ports.TokenDenylist
	if cfg.TokenDenylist {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()

		denylist = redisdb.NewDenylist(rdb)
		deps.Redis = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token denylist enabled")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, denylist, logger.Component("tokens"))
	jobs := service.NewJobService(jobRepo, logger.Component("jobs"))
	bids := service.NewBidService(bidRepo, logger.Component("bids"))

	// Workers outlive the signal so in-flight placements finish during the drain.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	dispatcher := queue.NewDispatcher(cfg.Bids.Workers, bids, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	deps.Tokens = tokens
	deps.Jobs = jobs
	deps.Bids = bids
	deps.BidPlacer = dispatcher

	e := api.NewRouter(deps)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server is running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	stopWorkers()

	log.Info().Msg("server exited")
}
