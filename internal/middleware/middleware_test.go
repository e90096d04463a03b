package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=10"`
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}

func TestAdminOnly(t *testing.T) {
	app := fiber.New()
	app.Delete("/admin", AdminOnly("secret"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong", "nope", fiber.StatusForbidden},
		{"right", "secret", fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodDelete, "/admin", nil)
			if tt.key != "" {
				req.Header.Set(AdminHeader, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestValidateQueryParams(t *testing.T) {
	app := fiber.New()
	app.Get("/list", ValidateQueryParams(func() *listQuery { return &listQuery{} }), func(c *fiber.Ctx) error {
		q := c.Locals(QueryParamsKey).(*listQuery)
		return c.JSON(fiber.Map{"limit": q.Limit})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/list?limit=5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, decode(t, resp.Body)["limit"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/list?limit=50", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, map[string]any{"Limit": "max"}, body["fields"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/list?limit=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestErrorHandlerAndLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(NewLogger(LoggerConfig{Logger: &log, Fields: []string{"status", "path"}}))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "I'm a teapot", decode(t, resp.Body)["error"])

	entry := decode(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, fiber.StatusTeapot, entry["status"])
	assert.Equal(t, "/boom", entry["path"])
}
