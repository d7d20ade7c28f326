package middleware

import (
	"strings"

	"marketplace/backend/config"
	"marketplace/backend/models"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests without a valid token and stores the session for
// the handlers.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := utils.ExtractSessionFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		utils.SetSession(c, session)
		return c.Next()
	}
}

// OptionalAuth stores the session when a valid token is present and lets anonymous
// requests through.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		session, err := utils.ExtractSessionFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		utils.SetSession(c, session)
		return c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.CurrentSession(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, r := range roles {
			if session.Role == r {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Forbidden - "+joinRoles(roles)+" access required")
	}
}

func joinRoles(roles []models.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return strings.Join(names, " or ")
}
