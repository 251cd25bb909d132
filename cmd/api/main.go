package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/handlers"
	"github.com/sarukeshwar2016/Inclusicity/internal/api/routes"
	"github.com/sarukeshwar2016/Inclusicity/internal/config"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/auth"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/matching"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/notification"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/ratings"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/reporting"
	"github.com/sarukeshwar2016/Inclusicity/internal/store/postgres"
	"github.com/sarukeshwar2016/Inclusicity/pkg/cache"
	"github.com/sarukeshwar2016/Inclusicity/pkg/database"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
	"github.com/sarukeshwar2016/Inclusicity/pkg/monitoring"
	"github.com/sarukeshwar2016/Inclusicity/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting InclusiCity API",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = &monitoring.NewRelicApp{}
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized",
			logger.String("app_name", cfg.NewRelic.AppName))
	} else {
		appLogger.Info("New Relic APM disabled")
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Initialize Redis. The cache is observational only, so a missing redis
	// degrades to uncached operation instead of refusing to start.
	var redisClient *redis.Client
	redisClient, err = cache.NewRedisClient(cache.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
		ReadTimeout: cfg.Redis.ReadTimeout,
	})
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without cache", logger.Err(err))
		redisClient = nil
	} else {
		appLogger.Info("Connected to Redis successfully")
	}
	defer cache.Close(redisClient)

	// Initialize PostgreSQL
	postgresDB, err := database.NewPostgresDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MaxIdle:  cfg.Database.MaxIdle,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresDB.Close()

	appLogger.Info("Connected to PostgreSQL successfully")

	// Stores
	accountStore := postgres.NewAccountStore(postgresDB)
	requestStore := postgres.NewRequestStore(postgresDB)
	ratingStore := postgres.NewRatingStore(postgresDB)
	sosStore := postgres.NewSOSStore(postgresDB)
	reportingStore := postgres.NewReportingStore(postgresDB)

	// Services
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authService := auth.NewService(accountStore, tokens, appLogger)
	engine := matching.NewEngine(requestStore, accountStore, ratingStore, redisClient, appLogger)
	aggregator := ratings.NewAggregator(requestStore, accountStore, ratingStore, appLogger)
	reports := reporting.NewService(reportingStore, redisClient, config.StatsCacheTTL, appLogger)

	var sender notification.Sender
	if cfg.SMTP.Enabled {
		sender = notification.NewSMTPSender(notification.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		sender = notification.NewLogSender(appLogger)
	}
	notifier := notification.NewNotifier(sender, appLogger)

	// Voice room signaling registry
	registry := websocket.NewRoomRegistry(websocket.DefaultRooms, appLogger)

	// Initialize handlers with dependencies
	h := handlers.NewHandlers(
		authService, tokens, engine, aggregator, reports,
		notifier, registry, sosStore, nrApp, appLogger,
	)

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Setup all routes
	var nrApplication *newrelic.Application
	if nrApp.IsEnabled() {
		nrApplication = nrApp.Application
	}
	routes.SetupRoutes(router, h, nrApplication, cfg.CORS.AllowedOrigins)

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}
