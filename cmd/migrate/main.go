package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crickstore/internal/config"
	"crickstore/internal/database"
	"crickstore/internal/events"
	"crickstore/internal/logger"
	"crickstore/internal/migration"
	"crickstore/internal/repository"
	"crickstore/internal/services/woocommerce"
	"crickstore/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := logger.New(cfg.LogLevel)

	if cfg.WooBaseURL == "" {
		logger.Fatal("WOO_BASE_URL is required")
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	catalog := repository.NewCatalog(db.DB)
	assets := storage.NewLocalStore(cfg.ImageStorageDir, cfg.ImagePublicPrefix)
	importer := migration.NewImporter(catalog, logger)
	images := migration.NewImagePipeline(assets, time.Duration(cfg.ImageDownloadDelay)*time.Millisecond, logger)
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)
	defer publisher.Close()

	orchestrator := migration.NewOrchestrator(catalog, importer, images, publisher, cfg.ImageWorkers, logger)
	client := woocommerce.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, cfg.WooPageSize, logger)

	// Cancel cleanly on SIGINT/SIGTERM; the run stops at the next record.
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutdown requested, stopping after the current record...")
		cancel()
	}()

	result := orchestrator.Execute(ctx, client)

	fmt.Printf("\n%s\n", result.Message)
	fmt.Printf("  categories imported: %d\n", result.Stats.CategoriesImported)
	fmt.Printf("  products imported:   %d (skipped %d)\n", result.Stats.ProductsImported, result.Stats.ProductsSkipped)
	fmt.Printf("  images processed:    %d\n", result.Stats.ImagesProcessed)
	fmt.Printf("  attributes created:  %d\n", result.Stats.AttributesCreated)
	fmt.Printf("  errors:              %d\n", result.Stats.Errors)
	for _, e := range result.Errors {
		fmt.Printf("    - %s\n", e)
	}

	if !result.Success {
		os.Exit(1)
	}
}
