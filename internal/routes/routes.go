package routes

import (
	"time"

	"github.com/caselink/caselink-backend/internal/config"
	"github.com/caselink/caselink-backend/internal/handlers"
	"github.com/caselink/caselink-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	contactHandler *handlers.ContactHandler,
	caseHandler *handlers.CaseHandler,
	noteHandler *handlers.NoteHandler,
	userHandler *handlers.UserHandler,
) {
	// OAuth consent redirect target; Google calls back here with ?code=.
	// Stricter rate limit than the API at large.
	app.Get("/oauth", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.Authorize)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Everything below requires a valid session credential.
	protected := api.Group("", middleware.JWTProtected(cfg))

	// Contacts
	protected.Post("/contact", contactHandler.Create)
	protected.Get("/contacts", contactHandler.List)
	protected.Get("/contact/:id", contactHandler.GetByID)

	// Google contact sync
	protected.Get("/google-contacts", contactHandler.FetchGoogle)
	protected.Post("/google-contacts/import", contactHandler.ImportGoogle)

	// Cases
	protected.Post("/case", caseHandler.Create)
	protected.Get("/cases", caseHandler.List)
	protected.Get("/case/:id", caseHandler.GetByID)
	protected.Patch("/case/:id", caseHandler.Update)

	// Notes
	protected.Post("/note", noteHandler.Create)
	protected.Get("/notes", noteHandler.List)
	protected.Get("/note/:id", noteHandler.GetByID)

	// Users
	protected.Post("/user", userHandler.Create)
	protected.Get("/users", userHandler.List)
	protected.Get("/user/:id", userHandler.GetByID)
}
