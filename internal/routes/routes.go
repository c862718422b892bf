// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"etude/internal/handlers"
	"etude/internal/middleware"
	"etude/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Fees       *handlers.FeesHandler
	Properties *handlers.PropertyHandler
	Contact    *handlers.ContactHandler
	Documents  *handlers.DocumentsHandler
	Dashboard  *handlers.DashboardHandler
}

// Options tunes the public rate limits. A zero limit disables the limiter.
type Options struct {
	LoginLimit   int
	ContactLimit int
	LimitWindow  time.Duration
}

func DefaultOptions() Options {
	return Options{
		LoginLimit:   5,
		ContactLimit: 5,
		LimitWindow:  time.Minute,
	}
}

func rateLimit(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers, authMiddleware *middleware.AuthMiddleware, opts Options) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Etude API",
			"version": handlers.Version,
		})
	})
	app.Get("/health", h.Health.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/login", rateLimit(opts.LoginLimit, opts.LimitWindow), h.Auth.LoginUser)
	api.Post("/refresh", h.Auth.RefreshToken)
	api.Post("/contact", rateLimit(opts.ContactLimit, opts.LimitWindow), h.Contact.Submit)

	setupFeeRoutes(api, h.Fees)
	setupPropertyRoutes(api, h.Properties)
	setupDocumentRoutes(api, h.Documents)

	// Authenticated account endpoints
	api.Get("/me", authMiddleware.Handler, h.Auth.Me)
	api.Post("/logout", authMiddleware.Handler, h.Auth.LogoutUser)
	api.Post("/change-password", authMiddleware.Handler,
		middleware.HasPermission(models.PermissionChangePassword), h.Auth.ChangePassword)

	setupAdminRoutes(app, h, authMiddleware)
}

func setupFeeRoutes(router fiber.Router, h *handlers.FeesHandler) {
	fees := router.Group("/fees")
	fees.Get("/jurisdictions", h.Jurisdictions)
	fees.Get("/schedule", h.Schedule)
	fees.Get("/estimate", h.Estimate)
	fees.Post("/estimate", h.Estimate)
}

func setupPropertyRoutes(router fiber.Router, h *handlers.PropertyHandler) {
	properties := router.Group("/properties")
	properties.Get("/", h.ListPublished)
	properties.Get("/categories", h.Categories)
	properties.Get("/:id", h.GetPublished)
}

func setupDocumentRoutes(router fiber.Router, h *handlers.DocumentsHandler) {
	docs := router.Group("/documents")
	docs.Get("/checklists", h.ListChecklists)
	docs.Get("/checklists/:id", h.GetChecklist)
	docs.Get("/checklists/:id/pdf", h.ChecklistPDF)
	docs.Post("/fiche/pdf", h.FichePDF)
}

func setupAdminRoutes(app *fiber.App, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	read := middleware.HasPermission(models.PermissionListingRead)
	write := middleware.HasPermission(models.PermissionListingWrite)

	properties := admin.Group("/properties")
	properties.Get("/", read, h.Properties.AdminList)
	properties.Post("/", write, h.Properties.Create)
	properties.Get("/:id", read, h.Properties.AdminGet)
	properties.Put("/:id", write, h.Properties.Update)
	properties.Delete("/:id", write, h.Properties.Delete)
	properties.Patch("/:id/publish", middleware.HasPermission(models.PermissionListingPublish), h.Properties.SetPublished)
	properties.Post("/:id/images", write, h.Properties.UploadImage)
	properties.Delete("/:id/images/:imageId", write, h.Properties.DeleteImage)

	contacts := admin.Group("/contacts")
	contacts.Get("/", middleware.HasPermission(models.PermissionContactRead), h.Contact.AdminList)
	contacts.Patch("/:id/handled", middleware.HasPermission(models.PermissionContactWrite), h.Contact.MarkHandled)

	admin.Get("/dashboard", middleware.HasPermission(models.PermissionContactRead), h.Dashboard.GetOfficeDashboard)
	admin.Get("/cache-stats", middleware.HasPermission(models.PermissionReadAdmin), h.Health.CacheStats)
}
