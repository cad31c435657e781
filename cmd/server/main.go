package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/aitimer/backend/api/handler"
	"github.com/aitimer/backend/internal/config"
	"github.com/aitimer/backend/internal/infrastructure/monitor"
	pgInfra "github.com/aitimer/backend/internal/infrastructure/postgres"
	redisInfra "github.com/aitimer/backend/internal/infrastructure/redis"
	"github.com/aitimer/backend/internal/middleware"
	"github.com/aitimer/backend/internal/router"
	"github.com/aitimer/backend/internal/services"
	"github.com/aitimer/backend/internal/services/lifecycle"
	"github.com/aitimer/backend/pkg/httpcontext"
	"github.com/aitimer/backend/pkg/logger"
	"github.com/aitimer/backend/repository"
	boltRepo "github.com/aitimer/backend/repository/bolt"
	"github.com/aitimer/backend/repository/postgres"
	redisRepo "github.com/aitimer/backend/repository/redis"
	scheduleUC "github.com/aitimer/backend/usecase/schedule"
	statsUC "github.com/aitimer/backend/usecase/statistics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	loc, err := time.LoadLocation(cfg.Stats.Timezone)
	if err != nil {
		zapLogger.Fatal("invalid stats timezone", zap.String("timezone", cfg.Stats.Timezone), zap.Error(err))
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	var (
		rollups     repository.RollupRepository
		rollupSizer monitor.RollupSizer
		mon         *monitor.Monitor
	)
	switch cfg.Rollup.Backend {
	case config.RollupBackendRedis:
		client, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return client.Close()
		})
		rollups = redisRepo.NewRollupRepository(client, cfg.Rollup.TTL)
		mon = monitor.New(pool, client, nil, 10*time.Second, zapLogger)

	case config.RollupBackendBolt:
		store, err := boltRepo.Open(cfg.Rollup.BoltPath)
		if err != nil {
			zapLogger.Fatal("failed to open rollup store", zap.Error(err))
		}
		manager.Register("rollup_store", func(ctx context.Context) error {
			return store.Close()
		})
		rollups = store
		rollupSizer = store

		janitor := services.NewRollupJanitor(store, zapLogger, services.JanitorConfig{
			Interval:  cfg.Rollup.CleanupInterval,
			Retention: cfg.Rollup.Retention,
		})
		janitor.Start()
		manager.Register("rollup_janitor", func(ctx context.Context) error {
			janitor.Stop(ctx)
			return nil
		})
		mon = monitor.New(pool, nil, rollupSizer, 10*time.Second, zapLogger)

	default:
		mon = monitor.New(pool, nil, nil, 10*time.Second, zapLogger)
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	slotRepo := postgres.NewTimeSlotRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	schedRepo := postgres.NewScheduleRepository(pool)

	aggregator := statsUC.NewAggregator(slotRepo, taskRepo, rollups, statsUC.SystemClock{}, zapLogger)
	statsService := statsUC.NewService(aggregator, statsUC.RuleBasedModel{}, statsUC.SystemClock{}, loc, zapLogger)
	scheduleService := scheduleUC.New(schedRepo, rollups, loc, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Stats:    apiHandler.NewStatsHandler(statsService, cfg.Stats.DefaultWindowDays, ctxAdapter, zapLogger),
		Schedule: apiHandler.NewScheduleHandler(scheduleService, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
