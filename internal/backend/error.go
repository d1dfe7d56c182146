package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// NewError builds an Error, extracting a human readable message from body.
func NewError(status int, body []byte) *Error {
	return &Error{Status: status, Message: ExtractMessage(status, body), Body: body}
}

// AsError unwraps err into a backend *Error.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// ExtractMessage returns the error message carried by a backend body: the JSON
// `message` or `error` field (or `error.message`), else the raw text, else a
// generic fallback naming the status.
func ExtractMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fallbackMessage(status)
	}

	var obj map[string]json.RawMessage
	if json.Unmarshal(trimmed, &obj) == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if msg := stringOrMessage(obj[key]); msg != "" {
				return msg
			}
		}
		return fallbackMessage(status)
	}

	var s string
	if json.Unmarshal(trimmed, &s) == nil && s != "" {
		return s
	}
	return string(trimmed)
}

func stringOrMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &nested) == nil {
		return nested.Message
	}
	return ""
}

func fallbackMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("backend request failed: %d %s", status, text)
	}
	return fmt.Sprintf("backend request failed: %d", status)
}
