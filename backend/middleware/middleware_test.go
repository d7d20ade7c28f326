package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/backend/config"
	"marketplace/backend/models"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/instructor", AuthMiddleware(cfg), RequireRole(models.RoleInstructor), func(c *fiber.Ctx) error {
		s, _ := utils.CurrentSession(c)
		return c.SendString(s.UserID.String())
	})
	app.Get("/public", OptionalAuth(cfg), func(c *fiber.Ctx) error {
		if _, ok := utils.CurrentSession(c); ok {
			return c.SendString("member")
		}
		return c.SendString("anonymous")
	})
	app.Get("/limited", NewRateLimiter(nil).Limit("test", 1, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthAndRoles(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", JWTTTLHours: 1}
	app := newApp(cfg)

	instructorToken, err := utils.GenerateJWTToken(uuid.New(), models.RoleInstructor, cfg)
	require.NoError(t, err)
	studentToken, err := utils.GenerateJWTToken(uuid.New(), models.RoleStudent, cfg)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/instructor", ""))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/instructor", "Bearer "+instructorToken))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/instructor", instructorToken))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/instructor", "Bearer "+studentToken))

	assert.Equal(t, fiber.StatusOK, request(t, app, "/public", ""))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/public", "Bearer "+studentToken))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/public", "Bearer garbage"))
}

func TestRateLimiterWithoutRedisPassesThrough(t *testing.T) {
	app := newApp(&config.Config{JWTSecret: "testsecret", JWTTTLHours: 1})
	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusOK, request(t, app, "/limited", ""))
	}
}
