package utils

import (
	"errors"

	"marketplace/backend/apperr"

	"github.com/gofiber/fiber/v2"
)

// HandleError translates service errors into responses. Errors outside the taxonomy are
// logged and answered with a generic 500 so storage details never reach the client.
func HandleError(c *fiber.Ctx, logger *Logger, err error) error {
	var (
		validationErr *apperr.ValidationError
		notFoundErr   *apperr.NotFoundError
		authzErr      *apperr.AuthorizationError
		conflictErr   *apperr.ConflictError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return ValidationFailed(c, validationErr.Message, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		return NotFound(c, notFoundErr.Error())
	case errors.As(err, &authzErr):
		return Forbidden(c, authzErr.Error())
	case errors.As(err, &conflictErr):
		return Conflict(c, conflictErr.Error())
	case errors.As(err, &fiberErr):
		return Error(c, fiberErr.Code, fiberErr)
	}

	logger.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return InternalServerError(c, "Internal server error")
}
