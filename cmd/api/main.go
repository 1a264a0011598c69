package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/advisory"
	httptransport "github.com/spec-kit/dominion-roster/internal/api/http"
	"github.com/spec-kit/dominion-roster/internal/api/http/handlers"
	"github.com/spec-kit/dominion-roster/internal/auth"
	"github.com/spec-kit/dominion-roster/internal/config"
	"github.com/spec-kit/dominion-roster/internal/events"
	"github.com/spec-kit/dominion-roster/internal/observability"
	"github.com/spec-kit/dominion-roster/internal/persistence"
	"github.com/spec-kit/dominion-roster/internal/repository"
	"github.com/spec-kit/dominion-roster/internal/service"
	"github.com/spec-kit/dominion-roster/internal/store"
	"github.com/spec-kit/dominion-roster/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	backupRepo := repository.NewBackupRepository(pg.PoolHandle())
	backupService := service.NewBackupService(backupRepo, cfg.Roster.BackupKey, logger)
	worker.StartBackupWorker(backupService, dispatcher)

	memberStore := store.NewRedisStore(redis.Client, logger)
	rosterService := service.NewRosterService(cfg.Roster.Seasons, service.RosterDependencies{
		Store:      memberStore,
		Backup:     backupService,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err := rosterService.Start(ctx); err != nil {
		logger.Fatal("failed to start roster sync", zap.Error(err))
	}
	defer rosterService.Stop()

	var generator advisory.Generator
	if gemini, err := advisory.NewGeminiGenerator(ctx, cfg.Advisory); err != nil {
		logger.Warn("advisory generator unavailable", zap.Error(err))
	} else {
		generator = gemini
	}
	advisoryService := service.NewAdvisoryService(generator, logger)

	gate := auth.NewGate(cfg.Auth)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, rosterService),
		Session:        handlers.NewSessionHandler(gate, tokens),
		Members:        handlers.NewMembersHandler(rosterService),
		Advisory:       handlers.NewAdvisoryHandler(advisoryService, rosterService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
