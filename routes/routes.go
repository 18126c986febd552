package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cafeops/drinkshop/app"
	"github.com/cafeops/drinkshop/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(recoverer(deps.Logger))
	r.Use(chimw.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	guard := deps.AuthMiddleware
	drinks := deps.DrinkHandler
	health := deps.HealthHandler

	r.Get("/health", health.HandleHealth)
	r.Get("/health/ready", health.HandleReadiness)

	r.Get("/", drinks.HandleWelcome)
	r.Get("/drinks", drinks.HandleListDrinks)
	r.With(guard.RequirePermission("get:drinks-detail")).
		Get("/drinks-detail", drinks.HandleListDrinksDetail)
	r.With(guard.RequirePermission("post:drinks")).
		Post("/drinks", drinks.HandleCreateDrink)
	r.With(guard.RequirePermission("patch:drinks")).
		Patch("/drinks/{id}", drinks.HandleUpdateDrink)
	r.With(guard.RequirePermission("delete:drinks")).
		Delete("/drinks/{id}", drinks.HandleDeleteDrink)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// recoverer turns panics into the 500 error envelope
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path))
					_ = utils.WriteError(w, http.StatusInternalServerError, "Internal Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
