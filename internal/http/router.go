package httpapi

import (
	"net/http"

	"github.com/dsjohal14/arcadeboard/internal/libs/obs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// NewRouter wires the API routes behind request IDs, request logging,
// panic recovery and CORS.
func NewRouter(h *Handler, logger zerolog.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	// Routes
	r.Get("/", h.HandleHealth)
	r.Post("/api/submit_score", h.HandleSubmitScore)
	r.Get("/api/get_leaderboard", h.HandleGetLeaderboard)

	return r
}
