package sheetpreview

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/scrimstack-labs/scoutsheet/internal/preview"
)

// SetupRoutes registers the sheet preview feature routes.
func SetupRoutes(router chi.Router, registry *preview.Registry, fetcher preview.Fetcher, logger *slog.Logger) {
	handlers := NewHandlers(registry, fetcher, logger)

	router.Get("/preview/{containerID}", handlers.PreviewPage)

	router.Route("/api/preview", func(r chi.Router) {
		r.Post("/containers", handlers.CreateContainer)
		r.Delete("/{containerID}", handlers.DeleteContainer)
		r.Get("/{containerID}/tabs", handlers.TabsJSON)
		r.Get("/{containerID}/select/{gid}", handlers.SelectTabSSE)
	})
}
