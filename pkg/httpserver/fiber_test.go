package httpserver

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-load-api/config"
)

var testServerConfig = config.ServerConfig{
	ReadTimeout:  time.Second,
	WriteTimeout: time.Second,
	IdleTimeout:  time.Second,
	BodyLimit:    64,
}

func TestInitFiberServer_Probes(t *testing.T) {
	ready := false
	app := InitFiberServer("test-app", testServerConfig, func() bool { return ready })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/manage/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/manage/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	ready = true
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/manage/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestInitFiberServer_RequestID(t *testing.T) {
	app := InitFiberServer("test-app", testServerConfig, nil)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "caller-id", resp.Header.Get(RequestIDHeader))
}

func TestInitFiberServer_ErrorHandler(t *testing.T) {
	app := InitFiberServer("test-app", testServerConfig, nil)
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("secret detail") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("unexpected") })

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/missing", fiber.StatusNotFound, `{"error":"Cannot GET /missing"}`},
		{"/boom", fiber.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"/panic", fiber.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestInitFiberServer_CORS(t *testing.T) {
	app := InitFiberServer("test-app", testServerConfig, nil)
	app.Post("/predict", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(fiber.MethodOptions, "/predict", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
