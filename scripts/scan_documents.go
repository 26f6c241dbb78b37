package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/config"
	"github.com/soarespng/cv-scanner/internal/models"
	"github.com/soarespng/cv-scanner/internal/repositories"
	"github.com/soarespng/cv-scanner/internal/services"
	"github.com/soarespng/cv-scanner/pkg/logger"
)

// Scans local PDF files through the same pipeline as the API and prints the
// results as JSON.
//
//	go run ./scripts/scan_documents.go -keywords "go,docker" cv1.pdf cv2.pdf
func main() {
	keywords := flag.String("keywords", "", "comma-separated keywords to score against")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("no files given", zap.String("usage", "scan_documents -keywords \"a,b\" file.pdf [file.pdf ...]"))
	}

	ctx := context.Background()

	storage, err := config.NewStorageService(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	scanner := services.NewScannerService(
		storage,
		services.NewPDFParserService(log),
		services.NewProfileParser(),
		services.NewKeywordScorer(),
		repositories.NewMemoryDocumentRepository(),
		log,
	)

	uploads := make([]services.Upload, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("file not readable, skipping", zap.String("path", path), zap.Error(err))
			continue
		}
		uploads = append(uploads, services.Upload{
			Filename:    filepath.Base(path),
			ContentType: "application/pdf",
			Data:        data,
		})
	}

	parsed := services.ParseKeywords(*keywords)
	results := scanner.Scan(ctx, uploads, parsed)
	summary := models.Summarize(results)

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(models.ScanResponse{
		Message:  "Files processed",
		Keywords: parsed,
		Results:  results,
		Summary:  summary,
	}); err != nil {
		log.Fatal("failed to write results", zap.Error(err))
	}

	log.Info("scan summary",
		zap.Int("total", summary.Total),
		zap.Int("completed", summary.Completed),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", len(paths)-len(uploads)),
	)

	if summary.Failed > 0 || len(uploads) < len(paths) {
		os.Exit(1)
	}
}
