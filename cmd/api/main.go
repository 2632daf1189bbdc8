package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bedbook/internal/api/http"
	"github.com/spec-kit/bedbook/internal/api/http/handlers"
	"github.com/spec-kit/bedbook/internal/auth"
	"github.com/spec-kit/bedbook/internal/config"
	"github.com/spec-kit/bedbook/internal/events"
	"github.com/spec-kit/bedbook/internal/observability"
	"github.com/spec-kit/bedbook/internal/persistence"
	"github.com/spec-kit/bedbook/internal/repository"
	"github.com/spec-kit/bedbook/internal/repository/memory"
	"github.com/spec-kit/bedbook/internal/service"
	"github.com/spec-kit/bedbook/internal/worker"
)

type repositories struct {
	users     repository.UserRepository
	hospitals repository.HospitalRepository
	beds      repository.BedRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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

	repos := repositories{}
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		pool := pg.PoolHandle()
		repos.users = repository.NewUserRepository(pool)
		repos.hospitals = repository.NewHospitalRepository(pool)
		repos.beds = repository.NewBedRepository(pool)
	} else {
		store := memory.NewStore()
		repos.users = store.Users()
		repos.hospitals = store.Hospitals()
		repos.beds = store.Beds()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var sessionStore auth.SessionStore
	if redis.Enabled() {
		sessionStore = auth.NewRedisSessionStore(redis.Client, cfg.Redis.KeyPrefix)
	} else {
		sessionStore = auth.NewMemorySessionStore()
	}
	sessions := auth.NewSessionManager(auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()), sessionStore)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))
	metrics := observability.NewMetrics(cfg.App.Name)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   repos.users,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(repos.hospitals, repos.beds)
	bookingService := service.NewBookingService(repos.beds, dispatcher)
	managementService := service.NewManagementService(service.ManagementDependencies{
		HospitalRepo:    repos.hospitals,
		BedRepo:         repos.beds,
		Catalog:         catalogService,
		Dispatcher:      dispatcher,
		MaxBedsPerBatch: cfg.Management.MaxBedsPerBatch,
	})

	bootstrapManagement(ctx, authService, cfg.Management, logger)

	app := httptransport.NewApp(cfg.App.Name, cfg.App.RequestTimeout())
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    redis,
		}),
		Home: handlers.NewHomeHandler(cfg.App.Name),
		Auth: handlers.NewAuthHandler(authService, handlers.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		}),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Booking:        handlers.NewBookingHandler(bookingService, metrics),
		Management:     handlers.NewManagementHandler(managementService, metrics),
		AuthMiddleware: auth.NewAuthMiddleware(sessions, cfg.Auth.CookieName, logger),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func bootstrapManagement(ctx context.Context, authService *service.AuthService, cfg config.ManagementConfig, logger *zap.Logger) {
	if cfg.BootstrapUsername == "" || cfg.BootstrapPassword == "" {
		return
	}
	created, err := authService.EnsureManagementUser(ctx, cfg.BootstrapUsername, cfg.BootstrapPassword)
	if err != nil {
		logger.Fatal("failed to bootstrap management user", zap.Error(err))
	}
	if created {
		logger.Info("management user created", zap.String("username", cfg.BootstrapUsername))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
