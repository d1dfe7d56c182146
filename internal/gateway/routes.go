package gateway

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the gateway API on app. The session middleware must
// already be installed.
func RegisterRoutes(app *fiber.App, h *Handler) {
	upload := app.Group("/api/upload/pieces-justificatives")
	upload.Post("/", h.Upload)
	upload.Put("/", h.UpdateWithoutID)
	upload.Put("/:id", h.Update)

	docs := app.Group("/api/documents", RequireUser())
	docs.Get("/", h.ListDocuments)
	docs.Get("/:id/preview", h.PreviewDocument)
	docs.Get("/:id/download", h.DownloadDocument)
	docs.Patch("/:id/status", h.UpdateDocumentStatus)
	docs.Delete("/:id", h.DeleteDocument)

	app.Get("/api/session", h.CurrentSession)
	app.Post("/api/session/logout", h.Logout)
}
