package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"rhdocs/internal/service"
)

// RegisterRoutes attaches the backend HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.PieceService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/pieces-justificatives")
	api.Get("/", ListPieces(svc))
	api.Post("/", CreatePiece(svc))
	api.Get("/collaborateur/:ownerId", ListPiecesByOwner(svc))
	api.Get("/:id", GetPiece(svc))
	api.Put("/:id", UpdatePiece(svc))
	api.Patch("/:id/statut", UpdatePieceStatus(svc))
	api.Delete("/:id", DeletePiece(svc))

	app.Get("/uploads/*", ServeUpload(svc))
}
