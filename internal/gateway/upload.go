package gateway

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rhdocs/internal/backend"
	"rhdocs/internal/http/apierror"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/model"
)

// Upload godoc
// @Summary Upload a supporting document
// @Description Forwards a file and its pieceJustificative metadata to the backend.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document file"
// @Param pieceJustificative formData string true "JSON metadata: collaborateurId, nom, type, description"
// @Success 201 {object} model.Document
// @Failure 400 {object} apierror.Payload
// @Router /api/upload/pieces-justificatives [post]
func (h *Handler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_FORM", "invalid multipart form: "+err.Error())
	}
	in, err := readInboundForm(form)
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", err.Error())
	}

	var missing []string
	if in.file == nil {
		missing = append(missing, filePart)
	}
	if in.metadata == nil {
		missing = append(missing, metadataPart)
	}
	if len(missing) > 0 {
		return apierror.Write(c, fiber.StatusBadRequest, "INCOMPLETE_FORM_DATA",
			"incomplete form data: missing "+strings.Join(missing, " and "))
	}

	meta, err := model.ParseMetadata(in.metadata)
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", "invalid pieceJustificative: "+err.Error())
	}
	if msg := h.validateMetadata(meta); msg != "" {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", msg)
	}
	h.warnUnknownType(c, meta.DocumentType)

	body := newFormStream(meta, in.file)
	defer body.Close()

	resp, err := h.client.Forward(c.UserContext(), http.MethodPost, h.client.DocumentsURL(""),
		body.ContentType(), body, credentials(c))
	if err != nil {
		h.log.Error("upload_forward_failed",
			zap.String("request_id", middleware.RequestIDFromCtx(c)),
			zap.Int64("owner_id", int64(meta.OwnerID)),
			zap.Error(err),
		)
		return apierror.Write(c, fiber.StatusInternalServerError, "UPLOAD_FAILED", "upload failed")
	}

	h.log.Info("upload_forwarded",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.Int64("owner_id", int64(meta.OwnerID)),
		zap.String("document_type", string(meta.DocumentType)),
		zap.Int64("size", in.file.Size),
		zap.Int("backend_status", resp.Status),
	)

	if !resp.OK() {
		return relayRaw(c, resp)
	}
	return relaySuccess(c, resp)
}

// Update godoc
// @Summary Update a supporting document
// @Description Forwards updated metadata, and optionally a replacement file, to the backend.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "document id"
// @Param file formData file false "replacement file"
// @Param pieceJustificative formData string true "JSON metadata"
// @Success 200 {object} model.Document
// @Failure 400 {object} apierror.Payload
// @Router /api/upload/pieces-justificatives/{id} [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := url.PathUnescape(c.Params("id"))
	if id = strings.TrimSpace(id); err != nil || id == "" {
		return apierror.Write(c, fiber.StatusBadRequest, "ID_REQUIRED", "document id is required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_FORM", "invalid multipart form: "+err.Error())
	}
	in, err := readInboundForm(form)
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", err.Error())
	}
	if in.metadata == nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INCOMPLETE_FORM_DATA", "pieceJustificative is required")
	}
	meta, err := model.ParseMetadata(in.metadata)
	if err != nil {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", "invalid pieceJustificative: "+err.Error())
	}
	if msg := h.validateMetadata(meta); msg != "" {
		return apierror.Write(c, fiber.StatusBadRequest, "INVALID_METADATA", msg)
	}
	h.warnUnknownType(c, meta.DocumentType)

	body := newFormStream(meta, in.file)
	defer body.Close()

	resp, err := h.client.Forward(c.UserContext(), http.MethodPut, h.client.DocumentsURL(url.PathEscape(id)),
		body.ContentType(), body, credentials(c))
	if err != nil {
		h.log.Error("update_forward_failed",
			zap.String("request_id", middleware.RequestIDFromCtx(c)),
			zap.String("document_id", id),
			zap.Error(err),
		)
		return apierror.Write(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}

	h.log.Info("update_forwarded",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.String("document_id", id),
		zap.Bool("file_replaced", in.file != nil),
		zap.Int("backend_status", resp.Status),
	)

	if !resp.OK() {
		return apierror.Write(c, resp.Status, "BACKEND_ERROR", backend.ExtractMessage(resp.Status, resp.Body))
	}
	return relaySuccess(c, resp)
}

// warnUnknownType logs document types outside the default list. The backend
// decides whether they are accepted.
func (h *Handler) warnUnknownType(c *fiber.Ctx, t model.DocumentType) {
	if t.Known() {
		return
	}
	h.log.Warn("unknown_document_type",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.String("document_type", string(t)),
	)
}

// UpdateWithoutID answers update attempts that name no document.
func (h *Handler) UpdateWithoutID(c *fiber.Ctx) error {
	return apierror.Write(c, fiber.StatusBadRequest, "ID_REQUIRED", "document id is required")
}

// relaySuccess sends a 2xx backend JSON body verbatim, or a minimal
// acknowledgement when the body is not JSON. A 204 carries no body, so its
// acknowledgement goes out as 200.
func relaySuccess(c *fiber.Ctx, resp *backend.Response) error {
	if len(resp.Body) > 0 && json.Valid(resp.Body) {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(resp.Status).Send(resp.Body)
	}
	status := resp.Status
	if status == fiber.StatusNoContent {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"success": true})
}

// relayRaw sends the backend response unchanged.
func relayRaw(c *fiber.Ctx, resp *backend.Response) error {
	if resp.ContentType != "" {
		c.Set(fiber.HeaderContentType, resp.ContentType)
	}
	return c.Status(resp.Status).Send(resp.Body)
}
