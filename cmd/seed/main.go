package main

import (
	"context"
	"flag"
	"log"

	"fin-analyzer/internal/ingest"
	"fin-analyzer/internal/repository"
	"fin-analyzer/pkg/config"
	"fin-analyzer/pkg/logger"
	"fin-analyzer/pkg/postgres"

	"go.uber.org/zap"
)

// seed imports a bank CSV export into the operations table.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	csvPath := flag.String("file", cfg.Data.CSVPath, "path to the operations CSV export")
	batchSize := flag.Int("batch", 500, "rows per INSERT")
	flag.Parse()

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()

	operations, err := ingest.LoadFile(ctx, *csvPath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to read operations", zap.Error(err))
	}

	// Connect to database
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	operationRepo := repository.NewOperationRepository(db, appLogger)
	if err := operationRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to prepare schema", zap.Error(err))
	}

	appLogger.Info("Starting database seeding...", zap.Int("operations", len(operations)))

	if *batchSize <= 0 {
		*batchSize = len(operations)
	}
	for start := 0; start < len(operations); start += *batchSize {
		end := min(start+*batchSize, len(operations))
		if err := operationRepo.CreateBatch(ctx, operations[start:end]); err != nil {
			appLogger.Fatal("Failed to store operations", zap.Int("offset", start), zap.Error(err))
		}
	}

	appLogger.Info("Database seeding completed successfully!")
}
