package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	identityapp "github.com/markethub/backend/internal/application/identity"
	orderingapp "github.com/markethub/backend/internal/application/ordering"
	partnerapp "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/cache"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/feed"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/infrastructure/persistence"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting MarketHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Per-shop ingestion lock. Redis coordinates locking across replicas;
	// when Redis is not reachable a single-process deployment falls back
	// to the in-memory locker.
	var locker cache.ShopLocker
	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-process ingestion locks", zap.Error(err))
		locker = cache.NewLocalShopLocker()
	} else {
		locker = cache.NewRedisShopLocker(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize repositories
	catalogStore := persistence.NewGormCatalogStore(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	tokenRepo := persistence.NewGormTokenRepository(db.DB)

	// Initialize application services
	fetcher := feed.NewHTTPFetcher(cfg.Feed.FetchTimeout, cfg.Feed.MaxBodySize)
	ingestService := catalogapp.NewIngestService(catalogStore, fetcher, feed.NewParser(), locker, cfg.Feed.LockTTL, log)
	queryService := catalogapp.NewQueryService(catalogStore, catalogStore)
	basketService := orderingapp.NewBasketService(orderRepo, catalogStore, log)
	orderService := orderingapp.NewOrderService(orderRepo, contactRepo, log)
	partnerService := partnerapp.NewService(catalogStore, orderRepo, ingestService, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	accountService := identityapp.NewAccountService(
		accountRepo,
		tokenRepo,
		auth.NewPasswordHasher(),
		jwtService,
		identityapp.NewLogMailer(log),
		log,
	)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:  handler.NewSystemHandler(db),
		Catalog: handler.NewCatalogHandler(queryService),
		Product: handler.NewProductHandler(queryService, partnerService),
		Basket:  handler.NewBasketHandler(basketService),
		Order:   handler.NewOrderHandler(orderService),
		Partner: handler.NewPartnerHandler(partnerService),
		User:    handler.NewUserHandler(accountService, orderService),
	}

	engine := router.New(cfg, jwtService, handlers, log).Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
