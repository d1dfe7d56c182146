// Package gateway is the same-origin HTTP layer in front of the document
// backend: the upload and update proxies, the document management API used by
// both the admin and the self-service screens, and session endpoints.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rhdocs/internal/backend"
	"rhdocs/internal/http/apierror"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/model"
	"rhdocs/internal/preview"
)

// Handler serves the gateway routes.
type Handler struct {
	client   *backend.Client
	resolver *preview.Resolver
	validate *validator.Validate
	log      *zap.Logger
}

// NewHandler wires a Handler. File URLs are resolved against the backend base URL.
func NewHandler(client *backend.Client, log *zap.Logger) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Handler{
		client:   client,
		resolver: preview.NewResolver(client.BaseURL()),
		validate: v,
		log:      log,
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validateMetadata returns a readable message for the first invalid field, or "".
func (h *Handler) validateMetadata(m model.Metadata) string {
	err := h.validate.Struct(m)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "gt":
			msgs = append(msgs, fe.Field()+" must be greater than "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// credentials collects what must be relayed to the backend for this request.
func credentials(c *fiber.Ctx) backend.Credentials {
	s := middleware.SessionFromCtx(c)
	return backend.Credentials{
		Authorization: s.Authorization(),
		Cookie:        s.Cookie(),
		CSRFToken:     s.CSRFToken(),
		RequestID:     middleware.RequestIDFromCtx(c),
	}
}

// backendError writes err, preserving the backend status when there is one.
func (h *Handler) backendError(c *fiber.Ctx, op string, err error) error {
	if be, ok := backend.AsError(err); ok {
		return apierror.Write(c, be.Status, "BACKEND_ERROR", be.Message)
	}
	h.log.Error("backend_call_failed",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.String("operation", op),
		zap.Error(err),
	)
	return apierror.Write(c, fiber.StatusBadGateway, "BACKEND_UNAVAILABLE", "document service unavailable")
}

// HealthCheck reports whether the backend answers its liveness probe.
func HealthCheck(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		resp, err := client.Forward(ctx, http.MethodGet, client.BaseURL()+"/healthz", "", nil, backend.Credentials{})
		if err != nil || !resp.OK() {
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
