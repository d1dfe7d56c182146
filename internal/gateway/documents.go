package gateway

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rhdocs/internal/backend"
	"rhdocs/internal/http/apierror"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/model"
	"rhdocs/internal/preview"
	"rhdocs/internal/session"
)

// DocumentView is a document as rendered by the management screens.
type DocumentView struct {
	model.Document
	Preview preview.Preview `json:"preview"`
}

// DocumentList is the body of GET /api/documents.
type DocumentList struct {
	Data         []DocumentView       `json:"data"`
	Total        int                  `json:"total"`
	Empty        bool                 `json:"empty"`
	Capabilities session.Capabilities `json:"capabilities"`
}

// StatusRequest is the body of PATCH /api/documents/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) view(d model.Document) DocumentView {
	return DocumentView{
		Document: d,
		Preview:  h.resolver.Resolve(d.StoredFileReference, d.OriginalFilename),
	}
}

// RequireUser rejects requests without a decoded caller.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := middleware.SessionFromCtx(c).CurrentUser(); !ok {
			return apierror.Write(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		return c.Next()
	}
}

// ListDocuments godoc
// @Summary List supporting documents
// @Tags documents
// @Produce json
// @Param ownerId query int false "collaborator id"
// @Param status query string false "PENDING, VALIDATED or REJECTED"
// @Success 200 {object} gateway.DocumentList
// @Failure 401 {object} apierror.Payload
// @Failure 403 {object} apierror.Payload
// @Router /api/documents [get]
func (h *Handler) ListDocuments(c *fiber.Ctx) error {
	s := middleware.SessionFromCtx(c)
	user, _ := s.CurrentUser()
	caps := s.Capabilities()

	var q backend.Query
	if raw := strings.TrimSpace(c.Query("ownerId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_OWNER_ID", "ownerId must be a positive integer")
		}
		q.OwnerID = id
	}
	if !caps.CanViewAllOwners {
		if q.OwnerID != 0 && q.OwnerID != user.ID {
			return apierror.Write(c, fiber.StatusForbidden, "FORBIDDEN", "cannot list documents of another collaborator")
		}
		q.OwnerID = user.ID
	}
	if raw := c.Query("status"); raw != "" {
		st, ok := model.ParseStatus(raw)
		if !ok {
			return apierror.Write(c, fiber.StatusBadRequest, "INVALID_STATUS", "status must be PENDING, VALIDATED or REJECTED")
		}
		q.Status = st
	}

	docs, err := h.client.List(c.UserContext(), q, credentials(c))
	if err != nil {
		return h.backendError(c, "list", err)
	}

	views := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, h.view(d))
	}
	return c.JSON(DocumentList{
		Data:         views,
		Total:        len(views),
		Empty:        len(views) == 0,
		Capabilities: caps,
	})
}

// loadDocument fetches the document named by the id route parameter. It writes
// the error response itself and returns nil when the caller must stop.
func (h *Handler) loadDocument(c *fiber.Ctx, op string) (*model.Document, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
	}
	doc, err := h.client.Get(c.UserContext(), int64(id), credentials(c))
	if err != nil {
		return nil, h.backendError(c, op, err)
	}
	if doc.ID == 0 {
		doc.ID = int64(id)
	}
	return doc, nil
}

// canSee reports whether the caller may view doc.
func canSee(s *session.Session, doc *model.Document) bool {
	if s.Capabilities().CanViewAllOwners {
		return true
	}
	u, ok := s.CurrentUser()
	return ok && u.ID == doc.OwnerID
}

// PreviewDocument godoc
// @Summary Resolve how a document is rendered
// @Tags documents
// @Produce json
// @Param id path int true "document id"
// @Success 200 {object} preview.Preview
// @Router /api/documents/{id}/preview [get]
func (h *Handler) PreviewDocument(c *fiber.Ctx) error {
	doc, err := h.loadDocument(c, "preview")
	if doc == nil {
		return err
	}
	if !canSee(middleware.SessionFromCtx(c), doc) {
		return apierror.Write(c, fiber.StatusForbidden, "FORBIDDEN", "document belongs to another collaborator")
	}
	return c.JSON(h.resolver.Resolve(doc.StoredFileReference, doc.OriginalFilename))
}

// DownloadDocument godoc
// @Summary Redirect to the document file
// @Tags documents
// @Param id path int true "document id"
// @Success 302
// @Router /api/documents/{id}/download [get]
func (h *Handler) DownloadDocument(c *fiber.Ctx) error {
	doc, err := h.loadDocument(c, "download")
	if doc == nil {
		return err
	}
	if !canSee(middleware.SessionFromCtx(c), doc) {
		return apierror.Write(c, fiber.StatusForbidden, "FORBIDDEN", "document belongs to another collaborator")
	}
	url := h.resolver.URL(doc.StoredFileReference)
	if url == "" {
		return apierror.Write(c, fiber.StatusNotFound, "NO_FILE", "document has no stored file")
	}
	return c.Redirect(url, fiber.StatusFound)
}

// UpdateDocumentStatus godoc
// @Summary Validate or reject a document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "document id"
// @Param body body gateway.StatusRequest true "new status"
// @Success 200 {object} gateway.DocumentView
// @Failure 403 {object} apierror.Payload
// @Router /api/documents/{id}/status [patch]
func (h *Handler) UpdateDocumentStatus(c *fiber.Ctx) error {
	s := middleware.SessionFromCtx(c)
	if !s.Capabilities().CanChangeStatus {
		return apierror.Write(c, fiber.StatusForbidden, "FORBIDDEN", "changing document status is not allowed")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	st, ok := model.ParseStatus(req.Status)
	if !ok {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_STATUS", "status must be PENDING, VALIDATED or REJECTED")
	}

	doc, err := h.client.UpdateStatus(c.UserContext(), int64(id), st, credentials(c))
	if err != nil {
		return h.backendError(c, "update_status", err)
	}
	u, _ := s.CurrentUser()
	h.log.Info("document_status_changed",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.Int("document_id", id),
		zap.String("status", string(st)),
		zap.Int64("by", u.ID),
	)
	return c.JSON(h.view(*doc))
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Param id path int true "document id"
// @Success 204
// @Failure 403 {object} apierror.Payload
// @Router /api/documents/{id} [delete]
func (h *Handler) DeleteDocument(c *fiber.Ctx) error {
	s := middleware.SessionFromCtx(c)
	doc, err := h.loadDocument(c, "delete")
	if doc == nil {
		return err
	}
	u, _ := s.CurrentUser()
	if doc.OwnerID != u.ID && !s.Capabilities().CanDeleteOthers {
		return apierror.Write(c, fiber.StatusForbidden, "FORBIDDEN", "cannot delete a document of another collaborator")
	}

	if err := h.client.Delete(c.UserContext(), doc.ID, credentials(c)); err != nil {
		return h.backendError(c, "delete", err)
	}
	h.log.Info("document_deleted",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.Int64("document_id", doc.ID),
		zap.Int64("owner_id", doc.OwnerID),
		zap.Int64("by", u.ID),
	)
	return c.SendStatus(fiber.StatusNoContent)
}
