package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bedbook/internal/auth"
	"github.com/spec-kit/bedbook/internal/domain"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// identityFrom returns the caller's identity, or nil for anonymous requests.
func identityFrom(c *fiber.Ctx) *domain.Identity {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	identity := principal.Identity
	return &identity
}

func invalidPayload() error {
	return apperrors.ErrValidation.WithDetail("body", "could not be parsed")
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
