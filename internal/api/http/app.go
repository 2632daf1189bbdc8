package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewApp builds the fiber app. Immutable makes request strings safe to keep
// after a handler returns; the in-memory repositories store them as given.
func NewApp(name string, readTimeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		Immutable:             true,
		ReadTimeout:           readTimeout,
	})
}
