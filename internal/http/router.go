package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type RouterConfig struct {
	JWTSecret      string
	RequestTimeout time.Duration
	Log            *zap.SugaredLogger
}

type Handlers struct {
	Orders      *OrderHandler
	Products    *ProductHandler
	Vehicles    *VehicleHandler
	Users       *UserHandler
	Departments *DepartmentHandler
}

// NewRouter wires the full route table. Three access tiers: public
// (storefront browsing, checkout, self-cancel), authenticated, and admin.
func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.S()
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(Authenticator(cfg.JWTSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Users.Register)
			r.Post("/login", h.Users.Login)
			r.Post("/seed-admin", h.Users.SeedAdmin)
			r.With(RequireAuth).Get("/profile", h.Users.Profile)
		})

		r.Route("/furniture", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/{id}", h.Products.Get)
			r.With(RequireAdmin).Post("/", h.Products.Create)
			r.With(RequireAdmin).Put("/{id}", h.Products.Update)
			r.With(RequireAdmin).Delete("/{id}", h.Products.Delete)
			r.With(RequireAdmin).Post("/seed", h.Products.Seed)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.Vehicles.List)
			r.Get("/{id}", h.Vehicles.Get)
			r.With(RequireAdmin).Post("/", h.Vehicles.Create)
			r.With(RequireAdmin).Put("/{id}", h.Vehicles.Update)
			r.With(RequireAdmin).Delete("/{id}", h.Vehicles.Delete)
			r.With(RequireAdmin).Patch("/{id}/toggle-availability", h.Vehicles.ToggleAvailability)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.Create)

			// Fixed paths before /{id} so "search" and "report" are not
			// swallowed as order ids.
			r.With(RequireAdmin).Get("/search", h.Orders.Search)
			r.With(RequireAdmin).Get("/report", h.Orders.Report)

			r.With(RequireAuth).Get("/user/{email}", h.Orders.ListByEmail)
			r.With(RequireAuth).Get("/{id}", h.Orders.Get)
			r.Post("/{id}/cancel", h.Orders.Cancel)

			r.With(RequireAdmin).Get("/", h.Orders.List)
			r.With(RequireAdmin).Patch("/{id}/status", h.Orders.UpdateStatus)
			r.With(RequireAdmin).Patch("/{id}/assign-vehicle", h.Orders.AssignVehicle)
			r.With(RequireAdmin).Delete("/{id}/unassign-vehicle", h.Orders.UnassignVehicle)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.Departments.List)
			r.With(RequireAdmin).Post("/", h.Departments.Create)
		})
	})

	return r
}
