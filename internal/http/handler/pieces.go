// Package handler holds the HTTP handlers of the document backend.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rhdocs/internal/http/apierror"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/model"
	"rhdocs/internal/service"
)

// serviceError translates service errors into API errors without leaking internals.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return apierror.Write(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrIDRequired):
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
	case errors.Is(err, service.ErrInvalidStatus):
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_STATUS", err.Error())
	case errors.Is(err, service.ErrInvalidMetadata):
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", err.Error())
	case errors.Is(err, service.ErrReaderNil):
		return apierror.Write(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	zap.L().Error("request_failed",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apierror.Write(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func pathID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

// HealthCheck reports whether the database answers a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return apierror.Write(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

func listWith(c *fiber.Ctx, svc service.PieceService, ownerID int64) error {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	docs, err := svc.List(c.UserContext(), ownerID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return c.JSON(docs)
}

// ListPieces godoc
// @Summary List every supporting document
// @Tags pieces
// @Produce json
// @Param limit query int false "page size, 0 for all"
// @Param offset query int false "rows to skip"
// @Success 200 {array} model.Document
// @Router /api/pieces-justificatives [get]
func ListPieces(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listWith(c, svc, 0)
	}
}

// ListPiecesByOwner godoc
// @Summary List the documents of one collaborator
// @Tags pieces
// @Produce json
// @Param ownerId path int true "collaborator id"
// @Success 200 {array} model.Document
// @Router /api/pieces-justificatives/collaborateur/{ownerId} [get]
func ListPiecesByOwner(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, ok := pathID(c, "ownerId")
		if !ok {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_OWNER_ID", "invalid collaborateur id")
		}
		return listWith(c, svc, ownerID)
	}
}

// GetPiece godoc
// @Summary Get one document
// @Tags pieces
// @Produce json
// @Param id path int true "document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} apierror.Payload
// @Router /api/pieces-justificatives/{id} [get]
func GetPiece(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// metadataFromForm reads flat collaborateurId/nom/type/description fields. A
// pieceJustificative JSON field is accepted as well.
func metadataFromForm(c *fiber.Ctx) (model.Metadata, error) {
	if raw := strings.TrimSpace(c.FormValue("pieceJustificative")); raw != "" {
		m, err := model.ParseMetadata([]byte(raw))
		if err != nil {
			return model.Metadata{}, errors.Join(service.ErrInvalidMetadata, err)
		}
		return m, nil
	}
	var m model.Metadata
	if raw := strings.TrimSpace(c.FormValue("collaborateurId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.Metadata{}, errors.Join(service.ErrInvalidMetadata, errors.New("collaborateurId must be an integer"))
		}
		m.OwnerID = model.OwnerID(id)
	}
	m.DisplayName = strings.TrimSpace(c.FormValue("nom"))
	m.DocumentType = model.DocumentType(strings.TrimSpace(c.FormValue("type")))
	m.Description = c.FormValue("description")
	return m, nil
}

// withFile opens the optional file part and passes it to fn.
func withFile(c *fiber.Ctx, fn func(f *service.File) error) error {
	fh, err := c.FormFile("file")
	if err != nil || fh.Size == 0 {
		return fn(nil)
	}
	src, err := fh.Open()
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer src.Close()
	return fn(&service.File{
		Reader:      src,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
}

// CreatePiece godoc
// @Summary Create a document
// @Tags pieces
// @Accept multipart/form-data
// @Produce json
// @Param collaborateurId formData int true "collaborator id"
// @Param nom formData string true "display name"
// @Param type formData string true "document type"
// @Param description formData string false "description"
// @Param file formData file true "document file"
// @Success 201 {object} model.Document
// @Failure 400 {object} apierror.Payload
// @Router /api/pieces-justificatives [post]
func CreatePiece(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		meta, err := metadataFromForm(c)
		if err != nil {
			return serviceError(c, err)
		}
		return withFile(c, func(f *service.File) error {
			if f == nil {
				return apierror.Write(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
			}
			doc, err := svc.Create(c.UserContext(), meta, *f)
			if err != nil {
				return serviceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(doc)
		})
	}
}

// UpdatePiece godoc
// @Summary Update a document
// @Tags pieces
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "document id"
// @Param file formData file false "replacement file"
// @Success 200 {object} model.Document
// @Router /api/pieces-justificatives/{id} [put]
func UpdatePiece(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		meta, err := metadataFromForm(c)
		if err != nil {
			return serviceError(c, err)
		}
		return withFile(c, func(f *service.File) error {
			doc, err := svc.Update(c.UserContext(), id, meta, f)
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(doc)
		})
	}
}

type statusBody struct {
	Statut string `json:"statut"`
}

// UpdatePieceStatus godoc
// @Summary Change the status of a document
// @Tags pieces
// @Accept json
// @Produce json
// @Param id path int true "document id"
// @Success 200 {object} model.Document
// @Router /api/pieces-justificatives/{id}/statut [patch]
func UpdatePieceStatus(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		var body statusBody
		if err := c.BodyParser(&body); err != nil {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		doc, err := svc.UpdateStatus(c.UserContext(), id, body.Statut)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeletePiece godoc
// @Summary Delete a document and its file
// @Tags pieces
// @Param id path int true "document id"
// @Success 204
// @Router /api/pieces-justificatives/{id} [delete]
func DeletePiece(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ServeUpload streams a stored file. ?download=1 asks for an attachment.
func ServeUpload(svc service.PieceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.Open(c.UserContext(), c.Params("*"))
		if err != nil {
			return serviceError(c, err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, `"`+info.ETag+`"`)
		}
		if !info.LastModified.IsZero() {
			c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
		}
		if c.Query("download") != "" {
			name := info.OriginalFilename()
			if name == "" {
				name = info.Key
			}
			c.Attachment(name)
			c.Set(fiber.HeaderContentType, ct)
		}
		return c.SendStream(rc, int(info.Size))
	}
}
