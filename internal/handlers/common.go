package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/middleware"
	"github.com/propertyflow/propertyflow/internal/types"
)

var validate = validator.New()

// userID returns the authenticated user id set by the auth middleware.
func userID(c *fiber.Ctx) (string, error) {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	if id == "" {
		return "", &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "No authenticated user on request",
			Type:    "data.authorization.user",
		}
	}
	return id, nil
}

// parseBody binds the JSON request body into out and runs struct
// validation.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body: " + err.Error(),
			Type:    "data.request.body",
		}
	}
	if err := validate.Struct(out); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
			Type:    "data.request.validation",
		}
	}
	return nil
}
