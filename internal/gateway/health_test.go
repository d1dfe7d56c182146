package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhdocs/internal/backend"
)

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mb := newMemoryBackend(t)
		app := fiber.New()
		app.Get("/health", HealthCheck(backend.NewClient(mb.URL)))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("backend answers an error", func(t *testing.T) {
		sb := newStubBackend(t, http.StatusInternalServerError, "text/plain", "down")
		app := fiber.New()
		app.Get("/health", HealthCheck(backend.NewClient(sb.URL)))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	t.Run("backend unreachable", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(backend.NewClient("http://127.0.0.1:1")))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
