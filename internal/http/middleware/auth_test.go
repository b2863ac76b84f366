package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapi/internal/service"
)

type stubAuth map[string]string

func (s stubAuth) Authenticate(_ context.Context, token string) (string, error) {
	if token == "outage" {
		return "", errors.New("check revocation: redis: connection refused")
	}
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", fmt.Errorf("unknown token: %w", service.ErrUnauthorized)
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(RequireAuth(stubAuth{"good": "user-1"}))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: fiber.StatusOK, wantBody: "user-1"},
		{name: "scheme is case insensitive", header: "bearer good", wantStatus: fiber.StatusOK, wantBody: "user-1"},
		{name: "missing header", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: fiber.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", wantStatus: fiber.StatusUnauthorized},
		{name: "session store down", header: "Bearer outage", wantStatus: fiber.StatusInternalServerError, wantBody: "authenticate: check revocation: redis: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := readBody(t, resp.Body)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body)
			} else {
				assert.Contains(t, body, `"code":"UNAUTHORIZED"`)
			}
		})
	}
}
