package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"fembalance/internal/adapters/config"
	"fembalance/internal/adapters/errors/noop"
	"fembalance/internal/adapters/errors/sentry"
	"fembalance/internal/adapters/postgres"
	"fembalance/internal/adapters/redis"
	"fembalance/internal/api"
	"fembalance/internal/api/health"
	"fembalance/internal/metrics"
	cycleml "fembalance/internal/ml/cycle"
	pcosml "fembalance/internal/ml/pcos"
	"fembalance/internal/ml/symptoms"
	repo "fembalance/internal/repository/postgres"
	"fembalance/internal/services/inference"
	"fembalance/internal/validation"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Load models. Missing bundles fall back to synthetic defaults, so
	// the service comes up either way
	validator := validation.New()

	cyclePredictor := cycleml.New(validator, log.With("component", "cycle_predictor"))
	cyclePredictor.Load(cfg.Models.CyclePath)
	metrics.SetModelLoaded("cycle", cyclePredictor.Ready())

	pcosPredictor := pcosml.New(validator, log.With("component", "pcos_predictor"))
	pcosPredictor.Load(cfg.Models.PCOSPath)
	metrics.SetModelLoaded("pcos", pcosPredictor.Ready())

	service := inference.NewService(cyclePredictor, pcosPredictor, symptoms.New(), validator)

	// Optional side channels
	pgClient := initPostgres(cfg, service, log)
	if pgClient != nil {
		defer pgClient.Close()
	}
	redisClient := initRedis(cfg, service, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var db *sqlx.DB
	if pgClient != nil {
		db = pgClient.DB()
	}
	var rdb *goredis.Client
	if redisClient != nil {
		rdb = redisClient.Client()
	}

	healthHandler := health.New(
		log.With("component", "health"),
		service,
		db,
		rdb,
		cfg.App.Name,
		version,
	)
	handler := api.NewHandler(service, log.With("component", "api"))
	server := api.NewServer(cfg.Server, cfg.App.Name, version, handler, healthHandler, log.With("component", "http"))

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(cfg, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initPostgres connects the prediction-history store when enabled.
// A connection failure degrades to no history, never a crash
func initPostgres(cfg *config.Config, service *inference.Service, log *logger.Logger) *postgres.Client {
	if !cfg.Postgres.Enabled {
		log.Info("Prediction history disabled")
		return nil
	}

	client, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Warnf("Failed to connect to Postgres, history disabled: %v", err)
		return nil
	}

	service.EnableHistory(repo.NewPredictionRepository(client.DB()))
	log.Info("Prediction history enabled (Postgres)")
	return client
}

// initRedis connects the response cache when enabled
func initRedis(cfg *config.Config, service *inference.Service, log *logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Info("Prediction cache disabled")
		return nil
	}

	client, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Warnf("Failed to connect to Redis, cache disabled: %v", err)
		return nil
	}

	service.EnableCache(client, cfg.Redis.CacheTTL)
	log.Info("Prediction cache enabled (Redis)")
	return client
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(cfg *config.Config, server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("HTTP server shutdown failed: %v", err)
	}

	if errorTracker != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer flushCancel()
		if err := errorTracker.Flush(flushCtx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
