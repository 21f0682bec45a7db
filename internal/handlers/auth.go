package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/propertyflow/propertyflow/internal/config"
	"github.com/propertyflow/propertyflow/internal/services"
	"github.com/propertyflow/propertyflow/internal/utils"
)

// AuthHandler handles session routes
type AuthHandler struct {
	Cfg *config.Config
}

// LoginRequest is the login request body
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login
// @Summary Sign in with the application password
// @Description Exchanges the shared application password for a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := services.Authenticate(h.Cfg, req.Password); err != nil {
		return utils.ErrorResponse(c, "Invalid password", fiber.StatusUnauthorized, "auth.login")
	}

	token, expires, err := services.IssueSession(h.Cfg)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":      true,
		"userId":  h.Cfg.MasterUserID,
		"email":   h.Cfg.MasterUserEmail,
		"expires": expires.UTC().Format(time.RFC3339),
	})
}

// Logout handles POST /api/auth/logout
// @Summary Sign out
// @Description Clears the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// Session handles GET /api/auth/session
// @Summary Check the current session
// @Description Returns the authenticated user id when the session cookie is valid
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":     true,
		"userId": uid,
	})
}
