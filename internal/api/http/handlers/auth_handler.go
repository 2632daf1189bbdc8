package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bedbook/internal/api/dto"
	"github.com/spec-kit/bedbook/internal/auth"
	"github.com/spec-kit/bedbook/internal/service"
)

const (
	msgRegistered = "Registration successful. Please log in."
	msgLoggedOut  = "You have been logged out."
)

// CookieSettings controls the session cookie.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler exposes register, login and logout.
type AuthHandler struct {
	auth   *service.AuthService
	cookie CookieSettings
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{auth: authService, cookie: cookie}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	user, err := h.auth.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return data(c, fiber.StatusCreated, fiber.Map{
		"user":     dto.NewUserResponse(user.Identity()),
		"message":  msgRegistered,
		"redirect": "/login",
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return data(c, fiber.StatusOK, fiber.Map{
		"user":     dto.NewUserResponse(result.Identity),
		"auth":     dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		"redirect": "/beds",
	})
}

// Logout handles GET /logout. It succeeds for anonymous callers too.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		if err := h.auth.Logout(c.UserContext(), principal.Token); err != nil {
			return err
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return data(c, fiber.StatusOK, dto.MessageResponse{Message: msgLoggedOut, Redirect: "/"})
}
