package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Scan     *ScanHandler
	View     *ViewHandler
	Document *DocumentHandler
}

// NewApp builds the fiber application with middleware and every route
// registered.
func NewApp(bodyLimit int, r Router) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "CV Scanner API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/scan", r.Scan.HandleScan)
	api.Get("/documents/:id", r.Document.HandleGetDocument)
	api.Delete("/documents/:id", r.Document.HandleDeleteDocument)

	app.Get("/view/:filename", r.View.HandleView)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Scanner API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/scan",
				"GET /api/v1/documents/:id",
				"DELETE /api/v1/documents/:id",
				"GET /view/:filename",
				"GET /api/v1/health",
				"GET /metrics",
			},
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
