package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arizona-prime/community-api/internal/config"
	"github.com/arizona-prime/community-api/internal/handler"
	"github.com/arizona-prime/community-api/internal/middleware"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	StaffHandler       *handler.StaffHandler
	PunishmentHandler  *handler.PunishmentHandler
	InactiveHandler    *handler.InactiveHandler
	ActivityLogHandler *handler.ActivityLogHandler
	ApplicationHandler *handler.ApplicationHandler
	LeadershipHandler  *handler.LeadershipHandler
	Authenticate       fiber.Handler
	LoginRateLimit     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())
	if cfg.StorageBackend == config.StorageLocal {
		app.Static("/uploads", cfg.UploadDir)
	}

	authenticate := deps.Authenticate
	if authenticate == nil {
		authenticate = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Auth: register/login are public, the admin create route guards itself.
	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		if deps.LoginRateLimit != nil {
			auth.Use("/login", deps.LoginRateLimit)
		}
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterAdmin(auth, authenticate)
	}

	// Profiles: privileged routes carry per-route guards since the group
	// admits any authenticated user.
	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users", authenticate))
	}

	// Staff roster
	if deps.StaffHandler != nil {
		deps.StaffHandler.Register(api.Group("/staff", authenticate))
	}

	// Disciplinary ledger; mutations guard themselves inside the handler
	if deps.PunishmentHandler != nil {
		deps.PunishmentHandler.Register(api.Group("/punishments", authenticate))
	}

	// Leave requests
	if deps.InactiveHandler != nil {
		deps.InactiveHandler.Register(api.Group("/inactives", authenticate))
	}

	// Audit trail
	if deps.ActivityLogHandler != nil {
		deps.ActivityLogHandler.Register(api.Group("/logs", authenticate, adminOnly))
	}

	// Public content
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterPublic(api.Group("/applications"))
		deps.ApplicationHandler.RegisterAdmin(api.Group("/admin/applications", authenticate, adminOnly))
	}
	if deps.LeadershipHandler != nil {
		deps.LeadershipHandler.RegisterPublic(api.Group("/leadership"))
		deps.LeadershipHandler.RegisterAdmin(api.Group("/admin/leadership", authenticate, adminOnly))
	}
}
