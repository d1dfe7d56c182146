// Package apierror writes the standardized JSON error body shared by the
// gateway and the backend:
//
//	{"request_id": "...", "error": {"code": "NOT_FOUND", "message": "document not found"}}
package apierror

import (
	"github.com/gofiber/fiber/v2"

	"rhdocs/internal/http/middleware"
)

// Payload defines the standardized error response body.
type Payload struct {
	RequestID string   `json:"request_id"`
	Error     Envelope `json:"error"`
}

// Envelope is the error part of Payload.
type Envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Write writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable message
func Write(c *fiber.Ctx, status int, code, message string) error {
	res := Payload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error: Envelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return Write(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return Write(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return Write(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return Write(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return Write(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
