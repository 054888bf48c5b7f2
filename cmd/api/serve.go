package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/project-board/internal/api/http"
	"github.com/spec-kit/project-board/internal/api/http/handlers"
	"github.com/spec-kit/project-board/internal/config"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/observability"
	"github.com/spec-kit/project-board/internal/persistence"
	"github.com/spec-kit/project-board/internal/repository"
	"github.com/spec-kit/project-board/internal/seed"
	"github.com/spec-kit/project-board/internal/service"
	"github.com/spec-kit/project-board/internal/store"
	"github.com/spec-kit/project-board/internal/worker"
)

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Logger,
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version))
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dataset, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	board := store.New(dataset)
	logger.Info("board seeded",
		zap.Int("users", len(dataset.Users)),
		zap.Int("projects", len(dataset.Projects)),
		zap.Int("tasks", len(dataset.Tasks)))

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

	var activityDeps service.ActivityDependencies
	if pg.Enabled() {
		activityDeps.Journal = repository.NewActivityRepository(pg.PoolHandle())
	}
	if redis.Enabled() {
		activityDeps.Broadcaster = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	activityService := service.NewActivityService(logger, activityDeps, cfg.Events)
	activityWorker := worker.NewActivityWorker(activityService, logger, cfg.Events.QueueSize)
	activityWorker.Subscribe(dispatcher)
	activityWorker.Start()

	boardService := service.NewBoardService(service.BoardDependencies{
		Store:      board,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name,
		httptransport.MiddlewareConfig{
			Logger:       logger,
			Metrics:      metrics,
			Timeout:      cfg.App.RequestTimeout(),
			AllowOrigins: cfg.App.CORSAllowOrigins,
		},
		httptransport.RouteConfig{
			Home: handlers.NewHomeHandler(cfg.App.Version),
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}, metrics),
			Users:    handlers.NewUsersHandler(boardService),
			Projects: handlers.NewProjectsHandler(boardService),
			Tasks:    handlers.NewTasksHandler(boardService),
			Stats:    handlers.NewStatsHandler(boardService),
		},
	)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(ctx, logger)

	shutdownErr := app.Shutdown()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.Events.PublishTimeout()*2)
	defer drainCancel()
	if err := activityWorker.Stop(drainCtx); err != nil {
		logger.Warn("activity queue not drained", zap.Error(err))
	}
	return shutdownErr
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	}
}
