package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/config"
	"github.com/soarespng/cv-scanner/internal/handlers"
	"github.com/soarespng/cv-scanner/internal/repositories"
	"github.com/soarespng/cv-scanner/internal/services"
	"github.com/soarespng/cv-scanner/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()
	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	ctx := context.Background()

	// Upload registry
	var docRepo repositories.DocumentRepository
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			log.Fatal("failed to initialize database", zap.Error(err))
		}
		docRepo = repositories.NewDocumentRepository(db)
	} else {
		log.Warn("database disabled, using in-memory document registry")
		docRepo = repositories.NewMemoryDocumentRepository()
	}

	// Initialize services
	storageService, err := config.NewStorageService(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	scanner := services.NewScannerService(
		storageService,
		services.NewPDFParserService(log),
		services.NewProfileParser(),
		services.NewKeywordScorer(),
		docRepo,
		log,
	)
	log.Info("services initialized")

	app := handlers.NewApp(int(cfg.Server.BodyLimit), handlers.Router{
		Scan:     handlers.NewScanHandler(scanner, cfg.Storage.MaxFileSize, log),
		View:     handlers.NewViewHandler(storageService, log),
		Document: handlers.NewDocumentHandler(docRepo, storageService, log),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("storage", cfg.Storage.Backend))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
