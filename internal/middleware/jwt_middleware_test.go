package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sproutlog/internal/middleware"
	"sproutlog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": middleware.UserID(c), "zip": middleware.Zip(c)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tokens := services.NewTokenService("middleware_secret", time.Hour)
	app := newProtectedApp(tokens)

	token, err := tokens.Issue(&services.Session{State: services.StateDashboard, UserID: 12, ZipCode: "45701"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
