package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/models"
	"github.com/soarespng/cv-scanner/internal/repositories"
	"github.com/soarespng/cv-scanner/internal/services"
)

type DocumentHandler struct {
	docRepo repositories.DocumentRepository
	storage services.StorageService
	log     *zap.Logger
}

func NewDocumentHandler(
	docRepo repositories.DocumentRepository,
	storage services.StorageService,
	log *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		docRepo: docRepo,
		storage: storage,
		log:     log,
	}
}

func (h *DocumentHandler) HandleGetDocument(c *fiber.Ctx) error {
	doc, err := h.findDocument(c)
	if err != nil {
		return err
	}

	return c.JSON(models.NewDocumentResponse(doc))
}

// HandleDeleteDocument removes the stored file and then its registry entry.
// A file that is already gone from storage does not block the cleanup.
func (h *DocumentHandler) HandleDeleteDocument(c *fiber.Ctx) error {
	doc, err := h.findDocument(c)
	if err != nil {
		return err
	}

	if err := h.storage.DeleteFile(c.UserContext(), doc.Filename); err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			h.log.Error("failed to delete stored file", zap.String("filename", doc.Filename), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		h.log.Warn("stored file already missing", zap.String("filename", doc.Filename))
	}

	if err := h.docRepo.Delete(doc.ID); err != nil && !errors.Is(err, repositories.ErrDocumentNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DocumentHandler) findDocument(c *fiber.Ctx) (*models.Document, error) {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return doc, nil
}
