package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/services"
)

type ViewHandler struct {
	storage services.StorageService
	log     *zap.Logger
}

func NewViewHandler(storage services.StorageService, log *zap.Logger) *ViewHandler {
	return &ViewHandler{
		storage: storage,
		log:     log,
	}
}

// HandleView handles GET /view/:filename
func (h *ViewHandler) HandleView(c *fiber.Ctx) error {
	locator := c.Params("filename")

	file, err := h.storage.ResolveFile(c.UserContext(), locator)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "File not found",
			})
		}

		h.log.Error("failed to resolve file", zap.String("filename", locator), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	if file.RedirectURL != "" {
		return c.Redirect(file.RedirectURL, fiber.StatusFound)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, "inline")
	return c.Send(file.Data)
}
