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

	"hotnews-aggregator/internal/news/config"
	delivery "hotnews-aggregator/internal/news/delivery/http"
	"hotnews-aggregator/internal/news/provider"
	"hotnews-aggregator/internal/news/repository"
	"hotnews-aggregator/internal/news/service"
	"hotnews-aggregator/pkg/logger"
	"hotnews-aggregator/pkg/postgres"
	"hotnews-aggregator/pkg/redis"
	"hotnews-aggregator/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the hot news aggregation service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting News Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize Telegram notifier
	notifier := telegram.NewNoop()
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	platformRepo := repository.NewPlatformRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	configRepo := repository.NewSystemConfigRepository(db.DB)
	favoriteRepo := repository.NewFavoriteRepository(db.DB)
	historyRepo := repository.NewSearchHistoryRepository(db.DB)
	preferenceRepo := repository.NewPreferenceRepository(db.DB)

	// Initialize provider client
	providerClient := provider.NewClient(provider.Config{
		BaseURL:           cfg.Aggregator.BaseURL,
		UserAgent:         cfg.Aggregator.UserAgent,
		Timeout:           cfg.Aggregator.FetchTimeout,
		RequestsPerSecond: cfg.Aggregator.RequestsPerSecond,
	})

	// Initialize services
	configSvc := service.NewSystemConfigService(configRepo, appLogger)
	locker := service.NewRedisRefreshLocker(redisClient.Client, cfg.Aggregator.LockTTL)
	aggregatorSvc := service.NewAggregatorService(platformRepo, newsRepo, configSvc, providerClient, locker, appLogger, service.AggregatorOptions{
		MaxConcurrent: cfg.Aggregator.MaxConcurrent,
	})
	feedSvc := service.NewFeedService(newsRepo, platformRepo, preferenceRepo, redisClient.Client, appLogger, cfg.Feed.HotCacheTTL)
	platformSvc := service.NewPlatformService(platformRepo, appLogger)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, newsRepo, appLogger)
	searchSvc := service.NewSearchService(newsRepo, historyRepo, appLogger)
	preferenceSvc := service.NewPreferenceService(preferenceRepo, platformRepo)

	// Start refresh scheduler
	scheduler := service.NewRefreshScheduler(aggregatorSvc, newsRepo, notifier, appLogger,
		cfg.Scheduler.RefreshCron, cfg.Scheduler.RetentionDays)
	if err := scheduler.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start refresh scheduler", logger.ErrorField(err))
	}
	defer scheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	newsHandler := delivery.NewNewsHandler(feedSvc, appLogger)
	newsGroup := apiV1.Group("/news")
	newsHandler.RegisterRoutes(newsGroup)

	refreshHandler := delivery.NewRefreshHandler(aggregatorSvc, appLogger)
	refreshHandler.RegisterRoutes(newsGroup)

	platformHandler := delivery.NewPlatformHandler(platformSvc, appLogger)
	platformHandler.RegisterRoutes(apiV1.Group("/platforms"))

	favoriteHandler := delivery.NewFavoriteHandler(favoriteSvc, appLogger)
	favoriteHandler.RegisterRoutes(apiV1.Group("/favorites"))

	searchHandler := delivery.NewSearchHandler(searchSvc, appLogger)
	searchHandler.RegisterRoutes(apiV1.Group("/search"))

	configHandler := delivery.NewConfigHandler(configSvc, appLogger)
	configHandler.RegisterRoutes(apiV1.Group("/configs"))

	preferenceHandler := delivery.NewPreferenceHandler(preferenceSvc, appLogger)
	preferenceHandler.RegisterRoutes(apiV1.Group("/preferences"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "news-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing news-service CLI: %s\n", err)
		os.Exit(1)
	}
}
