package handler

import (
	"github.com/gofiber/fiber/v2"

	"docscan/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// deps are probed by /health; nil entries are skipped.
func RegisterRoutes(app *fiber.App, docSvc service.DocumentService, deps ...Pinger) {
	app.Get("/health", HealthCheck(deps...))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/upload", UploadDocument(docSvc))
	api.Get("/documents", ListDocuments(docSvc))
	api.Get("/documents/:name/compare", CompareDocument(docSvc))
	api.Get("/uploads", UploadHistory(docSvc))

	app.Get(service.DocumentPathPrefix+":name", ServeDocument(docSvc))
}
