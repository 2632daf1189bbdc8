package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/bedbook/internal/api/http/handlers"
	"github.com/spec-kit/bedbook/internal/auth"
	"github.com/spec-kit/bedbook/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Home           *handlers.HomeHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Booking        *handlers.BookingHandler
	Management     *handlers.ManagementHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/", cfg.Home.Index)
	app.Get("/hospitals/:id", cfg.Catalog.Hospital)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/logout", cfg.Auth.Logout)

	requireLogin := auth.RequireLogin()
	app.Get("/beds", requireLogin, cfg.Catalog.Beds)
	app.Post("/beds", requireLogin, cfg.Catalog.Beds)
	app.Post("/beds/:id/book", requireLogin, cfg.Booking.Book)
	app.Get("/bookings", requireLogin, cfg.Booking.MyBookings)

	management := app.Group("/management", auth.RequireManagement())
	management.Get("", cfg.Management.Dashboard)
	management.Post("", cfg.Management.Dashboard)
	management.Post("/hospitals", cfg.Management.AddHospital)
	management.Post("/hospitals/:id/beds", cfg.Management.AddBeds)
}
