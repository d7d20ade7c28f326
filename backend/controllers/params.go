package controllers

import (
	"strconv"

	"marketplace/backend/apperr"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.InvalidField(name, "uuid")
	}
	return id, nil
}

func uintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidField(name, "numeric")
	}
	return uint(id), nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("Cannot parse JSON", nil)
	}
	return nil
}

// session is always present behind AuthMiddleware.
func session(c *fiber.Ctx) *utils.Session {
	s, _ := utils.CurrentSession(c)
	return s
}
