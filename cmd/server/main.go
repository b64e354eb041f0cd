package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appingestion "github.com/MrFriendly-B-V/OrderSync/internal/application/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/config"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/logger"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/persistence"
	"github.com/MrFriendly-B-V/OrderSync/internal/infrastructure/storefront"
	"github.com/MrFriendly-B-V/OrderSync/internal/interfaces/http/handler"
	"github.com/MrFriendly-B-V/OrderSync/internal/interfaces/http/middleware"
	"github.com/MrFriendly-B-V/OrderSync/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OrderSync",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Provider client
	provider, err := storefront.NewClient(&storefront.Config{
		AppID:            cfg.Storefront.AppID,
		AppSecret:        cfg.Storefront.AppSecret,
		TokenURL:         cfg.Storefront.TokenURL,
		OrdersQueryURL:   cfg.Storefront.OrdersQueryURL,
		InstallerURL:     cfg.Storefront.InstallerURL,
		TokenReceivedURL: cfg.Storefront.TokenReceivedURL,
		DashboardURL:     cfg.Storefront.DashboardURL,
		Timeout:          cfg.Storefront.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to configure storefront client", zap.Error(err))
	}

	// Initialize repositories
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	stateRepo := persistence.NewGormInstallStateRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	runRepo := persistence.NewGormRunRepository(db.DB)

	// Initialize application services
	tokenService := appingestion.NewTokenService(
		credentialRepo, stateRepo, provider, cfg.Ingestion.StateTTL, log)
	crawler := appingestion.NewCrawler(
		provider, uint64(cfg.Ingestion.PageRetryAttempts), log)
	pipeline := appingestion.NewService(
		tokenService, crawler, orderRepo, runRepo,
		cfg.Ingestion.RunTimeout, cfg.Ingestion.RunHistoryLimit, log)

	// Initialize handlers
	storeHandler := handler.NewStoreHandler(tokenService, pipeline, provider, log)
	ingestionHandler := handler.NewIngestionHandler(pipeline, log)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Register routes
	router.NewRouter(engine).
		Register(storeHandler).
		Register(ingestionHandler).
		Register(systemHandler).
		Setup()

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
