package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	_ "github.com/arisvieira/aris-api/docs"
	"github.com/arisvieira/aris-api/internal/api/auth"
	"github.com/arisvieira/aris-api/internal/api/health"
	"github.com/arisvieira/aris-api/internal/api/user"
	"github.com/arisvieira/aris-api/internal/config"
	"github.com/arisvieira/aris-api/internal/logging"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(cfg *config.Config, repo user.Repository, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // max time in seconds for OPTIONS preflight response cache
	})

	r.Use(corsMiddleware.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	// make the structured logger reachable from handlers and services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logging.IntoContext(req.Context(), logger)))
		})
	})

	// init services & handlers
	userService := user.NewUserService(repo)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := auth.NewAuthHandler(authService)

	r.Get("/health", health.HealthHandler)

	// public routes
	r.Post("/token", authHandler.Login)
	r.Post("/auth/token", authHandler.Login)
	r.Post("/users", userHandler.CreateUser)
	r.Delete("/users/{id}", userHandler.DeleteUser)

	// protected routes
	r.Group(func(r chi.Router) {
		r.Use(authHandler.RequireUser)
		r.Get("/users", userHandler.ListUsers)
		r.Put("/users/{id}", userHandler.UpdateUser)
	})

	// init swagger
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
