package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/usecase/credit"
	"github.com/amirhossein-jamali/imagify/internal/domain/usecase/image"
	"github.com/amirhossein-jamali/imagify/internal/domain/usecase/payment"
	userUseCase "github.com/amirhossein-jamali/imagify/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/clipdrop"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/razorpay"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/security"
	timeProvider "github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	production := cfg.Environment == config.Production
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: production,
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	promMetrics := metrics.NewPrometheus()

	// Database
	dbConfig := database.FromAppConfig(cfg)
	retryConfig := database.DefaultRetryConfig()
	if cfg.Transaction.MaxRetries > 0 {
		retryConfig.MaxRetries = cfg.Transaction.MaxRetries
	}
	dbManager := database.NewManager(dbConfig, appLogger, tp).WithRetryConfig(retryConfig)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := dbManager.Connect(startCtx); err != nil {
		cancelStart()
		appLogger.Error("Failed to connect to database", map[string]any{
			"target": dbConfig.Target(),
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(startCtx); err != nil {
		cancelStart()
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	cancelStart()

	if err := dbManager.StartPoolMonitor(30*time.Second, promMetrics.ObservePool); err != nil {
		appLogger.Warn("Pool monitor not started", map[string]any{
			"error": err.Error(),
		})
	}

	// Repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	userLockRepo := repository.NewUserLockRepository(dbManager.DB(), tp, appLogger)
	uow := dbManager.CreateUnitOfWork()

	// Security
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := security.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	if err != nil {
		appLogger.Error("Failed to create token service", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Upstream clients
	imageClient := clipdrop.NewClient(clipdrop.Config{
		BaseURL: cfg.ImageProvider.BaseURL,
		APIKey:  cfg.ImageProvider.APIKey,
		Model:   cfg.ImageProvider.Model,
		Timeout: cfg.ImageProvider.Timeout,
	}, appLogger, clipdrop.WithBreakerObserver(promMetrics.ObserveBreaker))

	paymentClient := razorpay.NewClient(razorpay.Config{
		BaseURL:   cfg.Payment.BaseURL,
		KeyID:     cfg.Payment.KeyID,
		KeySecret: cfg.Payment.KeySecret,
		Timeout:   cfg.Payment.Timeout,
	}, appLogger, razorpay.WithBreakerObserver(promMetrics.ObserveBreaker))

	// Use cases
	creditManager := credit.NewManager(appLogger).WithQueueSize(cfg.Transaction.QueueSize)
	lockTimeout := time.Duration(cfg.Transaction.LockTimeoutMs) * time.Millisecond
	creditService := credit.NewService(creditManager, uow, userLockRepo, tp, appLogger, promMetrics, lockTimeout)

	users := userUseCase.NewUserUseCase(
		userRepo,
		hasher,
		tokens,
		uuid.NewString,
		cfg.Credits.SignupGrant,
		tp,
		appLogger,
		promMetrics,
	)
	payments := payment.NewService(paymentClient, uow, creditService, uuid.NewString, cfg.Payment.Currency, tp, appLogger)
	images := image.NewService(users, creditService, imageClient, appLogger, promMetrics)

	// Background maintenance
	stop := make(chan struct{})
	startLockCleanup(userLockRepo, time.Duration(cfg.Transaction.LockCleanupInterval)*time.Second, appLogger, stop)

	var rateLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, appLogger)
		limiter.StartCleanup(5*time.Minute, stop)
		rateLimit = limiter.Handler()
	}

	// HTTP
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, middleware.CORSOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		FrontendURL:    cfg.Server.FrontendURL,
		AllowAll:       production,
	}, promMetrics)
	routes.SetupRoutes(router, routes.Handlers{
		User:    handler.NewUserHandler(users, appLogger),
		Payment: handler.NewPaymentHandler(payments, appLogger),
		Image:   handler.NewImageHandler(images, appLogger),
		System:  handler.NewSystemHandler(dbManager, tp, appLogger),
	}, routes.Options{
		Auth:       middleware.Auth(tokens, appLogger),
		RateLimit:  rateLimit,
		Metrics:    promMetrics.Handler(),
		Production: production,
		StaticDir:  cfg.Server.StaticDir,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// in-flight requests are done, so queued balance mutations can drain
	close(stop)
	appLogger.Info("Shutting down credit manager...", nil)
	creditManager.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// lockCleaner removes expired user locks
type lockCleaner interface {
	CleanupExpiredLocks(ctx context.Context) (int64, error)
}

// startLockCleanup deletes expired user locks on every tick until stop is closed
func startLockCleanup(repo lockCleaner, interval time.Duration, appLogger coreport.Logger, stop <-chan struct{}) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				removed, err := repo.CleanupExpiredLocks(ctx)
				cancel()
				if err != nil {
					appLogger.Warn("Expired lock cleanup failed", map[string]any{
						"error": err.Error(),
					})
					continue
				}
				if removed > 0 {
					appLogger.Debug("Expired locks removed", map[string]any{
						"count": removed,
					})
				}
			case <-stop:
				return
			}
		}
	}()
}
