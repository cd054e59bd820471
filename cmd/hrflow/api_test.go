package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/hrflow/pkg/catalog"
	"github.com/dukex/hrflow/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp() *fiber.App {
	session := services.NewSession(slog.Default(), catalog.Default())

	return NewAPI(slog.Default(), session).App()
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestAPI_RootEndpoint(t *testing.T) {
	status, body := get(t, setupTestApp(), "/")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hrflow designer", body)
}

func TestAPI_HealthCheck(t *testing.T) {
	app := setupTestApp()

	status, body := get(t, app, "/livez")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	status, _ = get(t, app, "/readyz")
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_GraphRoutesMounted(t *testing.T) {
	status, body := get(t, setupTestApp(), "/graph")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"nodes":[],"edges":[],"next_id":"node-1"}`, body)
}
