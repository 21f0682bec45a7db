package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/config"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/types"
)

// UserIDKey is the request-local key holding the authenticated user id.
const UserIDKey = "userID"

// AuthUser validates the session cookie and stores the user id on the
// request context.
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, "data.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, errorType string) error {
	token := c.Cookies(services.SessionCookieName)
	if token == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Session cookie %q not found", services.SessionCookieName),
			Type:    errorType,
		}
	}

	userID, err := services.ValidateSession(cfg, token)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	c.Locals(UserIDKey, userID)
	return c.Next()
}
