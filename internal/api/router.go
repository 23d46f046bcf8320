package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"instantshare/internal/api/handler"
	"instantshare/internal/auth"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	authHandler *handler.AuthHandler,
	instantHandler *handler.InstantHandler,
	userHandler *handler.UserHandler,
	sessions *auth.SessionManager,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public auth endpoints
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Everything below requires a live session
	r.Group(func(r chi.Router) {
		r.Use(handler.SessionAuth(sessions, logger))

		r.Get("/me", userHandler.Me)
		r.Post("/checkin", userHandler.CheckIn)
		r.Get("/users/{username}", userHandler.Profile)

		r.Route("/instants", func(r chi.Router) {
			r.Post("/", instantHandler.Create)
			r.Get("/", instantHandler.Wall)
			r.Get("/{instantID}", instantHandler.Detail)
			r.Post("/{instantID}/purchase", instantHandler.Purchase)
			r.Get("/{instantID}/media", instantHandler.Media)
		})
	})

	return r
}
