package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/youvit/gramedia-display-backend/config"
	"github.com/youvit/gramedia-display-backend/internal/app/controller"
	"github.com/youvit/gramedia-display-backend/internal/app/repository"
	"github.com/youvit/gramedia-display-backend/internal/app/service"
	"github.com/youvit/gramedia-display-backend/internal/router"
	"github.com/youvit/gramedia-display-backend/internal/scheduler"
	"github.com/youvit/gramedia-display-backend/internal/sheets"
	"github.com/youvit/gramedia-display-backend/internal/storage"
	"github.com/youvit/gramedia-display-backend/pkg/cache"
	"github.com/youvit/gramedia-display-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Gramedia Display Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	ctx := context.Background()

	// Open the spreadsheet workbook backing the record sink and catalogs
	workbook, err := sheets.OpenWorkbook(cfg.Sheets.WorkbookPath)
	if err != nil {
		logger.Fatal("Failed to open workbook", err, map[string]interface{}{
			"path": cfg.Sheets.WorkbookPath,
		})
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			logger.Error("Failed to close workbook", err)
		}
	}()

	// Initialize repositories and make sure every sheet carries its header
	recordRepo := repository.NewRecordRepository(workbook, cfg.Sheets.MainSheet)
	storeRepo := repository.NewStoreCatalogRepository(workbook, cfg.Sheets.StoreSheet)
	employeeRepo := repository.NewEmployeeCatalogRepository(workbook, cfg.Sheets.EmployeeSheet)
	for _, ensure := range []func(context.Context) error{
		recordRepo.EnsureStructure,
		storeRepo.EnsureStructure,
		employeeRepo.EnsureStructure,
	} {
		if err := ensure(ctx); err != nil {
			logger.Fatal("Failed to prepare workbook structure", err)
		}
	}

	// Connect to the object store
	photoStorage := storage.NewPhotoStorage(
		cfg.Storage.Region,
		cfg.Storage.Bucket,
		cfg.Storage.PathPrefix,
		cfg.Storage.AccessKeyID,
		cfg.Storage.SecretAccessKey,
		cfg.Storage.BaseURL,
	)
	if err := photoStorage.Ping(ctx); err != nil {
		logger.Fatal("Failed to reach storage bucket", err, map[string]interface{}{
			"bucket": cfg.Storage.Bucket,
		})
	}

	// Catalog cache is optional; the service works without it
	var cacheClient *cache.Client
	if cfg.Redis.Enabled {
		cacheClient, err = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CatalogTTL)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without catalog cache", map[string]interface{}{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	// Initialize services
	catalogService := service.NewCatalogService(storeRepo, employeeRepo, cacheClient)
	submissionService := service.NewSubmissionService(recordRepo, catalogService, photoStorage)

	// Initialize controllers
	healthController := controller.NewHealthController(workbook, photoStorage)
	catalogController := controller.NewCatalogController(catalogService)
	submissionController := controller.NewSubmissionController(submissionService)

	// Warm the catalog cache on a schedule when a cache is present
	if cacheClient != nil {
		catalogScheduler := scheduler.NewCatalogScheduler(catalogService, cfg.Scheduler.CatalogRefreshSpec)
		if err := catalogScheduler.Start(); err != nil {
			logger.Warn("Catalog scheduler disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer catalogScheduler.Stop()
		}
	}

	// Setup router
	r := router.NewRouter(healthController, catalogController, submissionController, cfg)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
