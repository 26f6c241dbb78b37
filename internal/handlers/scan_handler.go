package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/models"
	"github.com/soarespng/cv-scanner/internal/services"
)

const pdfContentType = "application/pdf"

type ScanHandler struct {
	scanner     services.ScannerService
	maxFileSize int64
	log         *zap.Logger
}

func NewScanHandler(
	scanner services.ScannerService,
	maxFileSize int64,
	log *zap.Logger,
) *ScanHandler {
	return &ScanHandler{
		scanner:     scanner,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleScan handles POST /scan. The whole batch is validated before any
// file is stored.
func (h *ScanHandler) HandleScan(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Please upload one or more PDF files as 'files'.",
		})
	}

	keywords := services.ParseKeywords(c.FormValue("keywords"))

	uploads := make([]services.Upload, 0, len(files))
	for _, file := range files {
		data, err := readFormFile(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read file %q: %v", file.Filename, err),
			})
		}

		if err := services.ValidatePDFUpload(file.Filename, data, h.maxFileSize); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		uploads = append(uploads, services.Upload{
			Filename:    file.Filename,
			ContentType: pdfContentType,
			Data:        data,
		})
	}

	h.log.Info("scan requested", zap.Int("files", len(uploads)), zap.Int("keywords", len(keywords)))

	results := h.scanner.Scan(c.UserContext(), uploads, keywords)

	return c.Status(fiber.StatusOK).JSON(models.ScanResponse{
		Message:  "Files processed",
		Keywords: keywords,
		Results:  results,
		Summary:  models.Summarize(results),
	})
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
