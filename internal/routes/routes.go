package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/screenengine/backend/internal/auth"
	"github.com/screenengine/backend/internal/handlers"
	"github.com/screenengine/backend/internal/middleware"
	"github.com/screenengine/backend/internal/models"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	validator auth.TokenValidator,
) {
	// Rate limiting config for credential endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)

	// Prometheus scrape endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(validator))

		// Any authenticated user
		r.With(auth.Require(auth.Authenticated())).Get("/auth/me", authHandler.Me)

		// Admin-only routes. Per-user reads and updates stay here: UpdateUser
		// can reassign roles, so exposing it to regular users would let them
		// grant themselves admin.
		r.Group(func(r chi.Router) {
			r.Use(auth.Require(auth.AnyRole(models.RoleCodeAdmin)))
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Put("/users/{id}", userHandler.UpdateUser)
			r.Post("/users/{id}/toggle-status", userHandler.ToggleStatus)
			r.Delete("/users/{id}", userHandler.DeleteUser)
			r.Get("/roles", userHandler.ListRoles)
		})
	})
}
