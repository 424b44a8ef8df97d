package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fin-analyzer/internal/api"
	"fin-analyzer/internal/api/handlers"
	"fin-analyzer/internal/ingest"
	"fin-analyzer/internal/market"
	"fin-analyzer/internal/repository"
	"fin-analyzer/internal/service"
	"fin-analyzer/internal/settings"
	"fin-analyzer/pkg/config"
	"fin-analyzer/pkg/logger"
	"fin-analyzer/pkg/postgres"

	"go.uber.org/zap"
)

// @title Fin Analyzer API
// @version 1.0
// @description Анализ банковских операций: инвесткопилка, переводы по номеру телефона, траты по категориям и дням недели

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting fin-analyzer service", zap.String("data_source", cfg.Data.Source))

	ctx := context.Background()

	var source service.TransactionSource
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		operationRepo := repository.NewOperationRepository(db, appLogger)
		if err := operationRepo.EnsureSchema(ctx); err != nil {
			appLogger.Fatal("Failed to prepare schema", zap.Error(err))
		}
		source = operationRepo
	default:
		source = ingest.NewFileSource(cfg.Data.CSVPath, appLogger)
	}

	// Market data clients
	httpClient := &http.Client{Timeout: cfg.Market.RequestTimeout}
	ratesClient := market.NewRatesClient(httpClient, cfg.Market.RatesURL, cfg.Market.RatesBase, appLogger)
	stocksClient := market.NewStocksClient(httpClient, cfg.Market.StocksURL, cfg.Market.APIKey, appLogger)
	if cfg.Market.APIKey == "" {
		appLogger.Warn("API_KEY is not set, stock prices will be empty")
	}

	// Initialize services
	analyticsService := service.NewAnalyticsService(appLogger, time.Now)
	dashboardService := service.NewDashboardService(
		source,
		ratesClient,
		stocksClient,
		settings.NewFile(cfg.Data.SettingsPath),
		appLogger,
	)

	// Initialize handlers
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, source, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, time.Now, appLogger)

	// Setup router
	app := api.SetupRouter(analyticsHandler, dashboardHandler, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
