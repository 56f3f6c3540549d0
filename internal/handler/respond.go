package handler

import (
	"errors"

	"marcenaria-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail translates service errors into HTTP responses. Expected errors
// carry their own message; everything else is a plain 500.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"message": apperr.Message(err, "not found")})
	case errors.Is(err, apperr.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"message": apperr.Message(err, "conflict")})
	case errors.Is(err, apperr.ErrInvalid):
		return c.Status(400).JSON(fiber.Map{"message": apperr.Message(err, "invalid input")})
	default:
		return c.Status(500).JSON(fiber.Map{"message": "internal server error"})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(400).JSON(fiber.Map{"message": message})
}

// paramUUID parses a path parameter. Callers pass the error through fail.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Invalid("invalid " + name)
	}
	return id, nil
}
