package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// RequireLogin rejects anonymous callers and points them at the login page.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.ErrUnauthorized.WithDetail("redirect", "/login")
		}
		return c.Next()
	}
}

// RequireManagement rejects callers without the management flag and points them home.
func RequireManagement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.Identity.IsManagement {
			return apperrors.ErrForbidden.WithDetail("redirect", "/")
		}
		return c.Next()
	}
}
