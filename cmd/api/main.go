package main

import (
	"log"
	"time"

	"crickstore/internal/api"
	"crickstore/internal/config"
	"crickstore/internal/database"
	"crickstore/internal/events"
	"crickstore/internal/logger"
	"crickstore/internal/migration"
	"crickstore/internal/repository"
	"crickstore/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Wire the migration pipeline
	catalog := repository.NewCatalog(db.DB)
	assets := storage.NewLocalStore(cfg.ImageStorageDir, cfg.ImagePublicPrefix)
	importer := migration.NewImporter(catalog, logger)
	images := migration.NewImagePipeline(assets, time.Duration(cfg.ImageDownloadDelay)*time.Millisecond, logger)
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)
	orchestrator := migration.NewOrchestrator(catalog, importer, images, publisher, cfg.ImageWorkers, logger)

	// Initialize API server
	server := api.New(cfg, logger, db, orchestrator)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
