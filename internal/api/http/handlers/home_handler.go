package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bedbook/internal/api/dto"
)

// HomeHandler serves the landing document.
type HomeHandler struct {
	serviceName string
}

// NewHomeHandler constructs handler.
func NewHomeHandler(serviceName string) *HomeHandler {
	return &HomeHandler{serviceName: serviceName}
}

// Index GET /.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	payload := fiber.Map{
		"service": h.serviceName,
		"links": fiber.Map{
			"beds":     "/beds",
			"login":    "/login",
			"register": "/register",
		},
	}
	if identity := identityFrom(c); identity != nil {
		payload["user"] = dto.NewUserResponse(*identity)
		links := payload["links"].(fiber.Map)
		links["bookings"] = "/bookings"
		links["logout"] = "/logout"
		if identity.IsManagement {
			links["management"] = "/management"
		}
	}
	return data(c, fiber.StatusOK, payload)
}
