// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full HTTP handler: middleware, health check and
// every API route.
func NewRouter(h *Handler, logger *slog.Logger, corsOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(Logging(logger))
	r.Use(CORS(corsOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r chi.Router, h *Handler) {
	// Skills
	r.Get("/skills", h.listSkills)
	r.Get("/skills/random", h.randomSkills)

	// Attempts
	r.Post("/attempts", h.startAttempt)
	r.Route("/attempts/{attemptID}", func(r chi.Router) {
		r.Get("/", h.getAttempt)
		r.Put("/answers/{questionID}", h.answerQuestion)
		r.Post("/next", h.nextQuestion)
		r.Post("/previous", h.previousQuestion)
		r.Post("/submit", h.submitAttempt)
		r.Get("/results", h.getResults)
		r.Get("/results.xlsx", h.exportResults)
	})
}
