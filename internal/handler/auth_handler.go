package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tickly/internal/config"
	"tickly/internal/domain"
	"tickly/internal/middleware"
	"tickly/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	cfg         *config.Config
}

func NewAuthHandler(authService auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Login == "" || input.Password == "" {
		return middleware.BadRequest("Login and password are required")
	}

	session, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusOK).JSON(session)
}

// Session refreshes the caller's token and cookie.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	session, err := h.authService.Refresh(c.Context(), user.ID)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusOK).JSON(session)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, session *domain.AuthSession) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    session.Token,
		Expires:  time.Unix(session.Expire, 0),
		HTTPOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("Not authenticated")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
