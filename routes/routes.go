package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/handlers"
	"github.com/upb/equipment-portal/middleware"
	"github.com/upb/equipment-portal/models"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	cfg := deps.Config
	r := chi.NewRouter()

	// Set before any sub-router is created so they inherit it
	r.NotFound(handlers.NotFoundHandler(cfg.Server.StaticDir))

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(middleware.LimitBody(cfg.Server.MaxBodyBytes))
	}

	// Identity is resolved for every request; anonymous requests pass through
	r.Use(deps.Identity.ResolveIdentity)

	// Health check endpoints
	var db handlers.HealthChecker
	if deps.DB != nil {
		db = deps.DB
	}
	health := handlers.NewHealthHandler(db, deps.Logger)
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	r.Get("/", handlers.IndexHandler(deps))

	r.Route("/users", func(r chi.Router) {
		mountUserRoutes(r, deps)
	})

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints; tokens are issued elsewhere
		r.Get("/me", handlers.MeHandler(deps))
		r.Post("/logout", handlers.LogoutHandler(deps))

		r.Route("/users", func(r chi.Router) {
			r.Use(deps.Authorizer.RequireAuth)
			mountUserRoutes(r, deps)
		})

		r.Route("/equipments", func(r chi.Router) {
			mountEquipmentRoutes(r, deps)
		})
	})

	return r
}

func mountUserRoutes(r chi.Router, deps *app.Dependencies) {
	authenticated := deps.Authorizer.RequireAuth
	admin := deps.Authorizer.RequireRole(models.RoleAdmin)

	r.With(admin).Get("/", handlers.ListUsersHandler(deps))
	r.With(admin).Post("/", handlers.CreateUserHandler(deps))
	r.With(authenticated).Get("/me", handlers.GetCurrentUserHandler(deps))
	r.With(authenticated).Get("/{id}", handlers.GetUserHandler(deps))
	r.With(authenticated).Put("/{id}", handlers.UpdateUserHandler(deps))
	r.With(admin).Delete("/{id}", handlers.DeleteUserHandler(deps))
}

func mountEquipmentRoutes(r chi.Router, deps *app.Dependencies) {
	authenticated := deps.Authorizer.RequireAuth
	admin := deps.Authorizer.RequireRole(models.RoleAdmin)

	r.With(authenticated).Get("/", handlers.ListEquipmentHandler(deps))
	r.With(authenticated).Get("/mine", handlers.ListMyEquipmentHandler(deps))
	r.With(authenticated).Get("/{id}", handlers.GetEquipmentHandler(deps))
	r.With(admin).Post("/", handlers.CreateEquipmentHandler(deps))
	r.With(admin).Put("/{id}", handlers.UpdateEquipmentHandler(deps))
	r.With(admin).Delete("/{id}", handlers.DeleteEquipmentHandler(deps))
}
