package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasktracker/backend/api/handler"
	"github.com/tasktracker/backend/internal/config"
	"github.com/tasktracker/backend/internal/infrastructure/monitor"
	pgInfra "github.com/tasktracker/backend/internal/infrastructure/postgres"
	"github.com/tasktracker/backend/internal/middleware"
	"github.com/tasktracker/backend/internal/router"
	"github.com/tasktracker/backend/internal/services/lifecycle"
	pkgauth "github.com/tasktracker/backend/pkg/auth"
	"github.com/tasktracker/backend/pkg/httpcontext"
	"github.com/tasktracker/backend/pkg/logger"
	"github.com/tasktracker/backend/repository"
	boltRepo "github.com/tasktracker/backend/repository/bolt"
	"github.com/tasktracker/backend/repository/postgres"
	"github.com/tasktracker/backend/usecase"
	authUC "github.com/tasktracker/backend/usecase/auth"
	taskUC "github.com/tasktracker/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Service:  cfg.AppName,
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	var (
		userRepo    repository.UserRepository
		taskRepo    repository.TaskRepository
		storagePing monitor.Pinger
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
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
		userRepo = postgres.NewUserRepository(pool)
		taskRepo = postgres.NewTaskRepository(pool)
		storagePing = pool

	default:
		store, err := boltRepo.Open(cfg.Storage.BoltPath)
		if err != nil {
			zapLogger.Fatal("failed to open bolt store", zap.Error(err))
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		userRepo = boltRepo.NewUserRepository(store)
		taskRepo = boltRepo.NewTaskRepository(store)
		storagePing = store
	}

	mon := monitor.New(storagePing, cfg.Storage.Driver, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	tokenCfg := pkgauth.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	}

	authUseCase := authUC.New(userRepo, pkgauth.NewHasher(), pkgauth.NewTokenIssuer(tokenCfg), zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	dispatcher := usecase.NewDispatcher()
	usecase.Register(dispatcher, authUseCase, taskUseCase)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(dispatcher, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(dispatcher, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(tokenCfg, zapLogger)
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
