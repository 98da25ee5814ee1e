package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deathlesz/md5/src/internal/config"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(cfg *config.Config, configHasher *config.ConfigHasher, version VersionInfo) http.Handler {
	r := chi.NewRouter()

	// Recovery sits inside RequestID so panics are still tagged
	r.Use(RequestID)
	r.Use(Recovery)
	r.Use(Logger)

	h := NewHandler(cfg, configHasher, version)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/digest", h.DigestBody)
		r.Get("/digest", h.DigestText)
		r.With(JSONContentType).Post("/verify", h.Verify)
		r.Get("/status", h.GetStatus)
	})

	r.Get("/health", h.CheckHealth)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r.URL.Path)
	})

	return r
}
