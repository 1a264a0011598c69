package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dominion-roster/internal/api/http/handlers"
	"github.com/spec-kit/dominion-roster/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Members        *handlers.MembersHandler
	Advisory       *handlers.AdvisoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/visitor", cfg.Session.VisitorLogin)
	authGroup.Post("/admin/login", cfg.Session.AdminLogin)
	authGroup.Get("/state", cfg.Session.State)
	authGroup.Post("/logout", cfg.Session.Logout)

	members := app.Group("/members", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	members.Get("/", cfg.Members.List)
	members.Post("/", auth.RequireAdmin(), cfg.Members.Create)
	members.Put("/:id", auth.RequireAdmin(), cfg.Members.Update)
	members.Put("/:id/seasons/:season", auth.RequireAdmin(), cfg.Members.UpdateStatus)
	members.Patch("/:id/group", auth.RequireAdmin(), cfg.Members.UpdateGroup)
	members.Patch("/:id/line-name", auth.RequireAdmin(), cfg.Members.UpdateLineName)
	members.Delete("/:id", auth.RequireAdmin(), cfg.Members.Delete)

	advisory := app.Group("/advisory", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	advisory.Post("/analyze", cfg.Advisory.Analyze)
}
