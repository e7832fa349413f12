package overview

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/scrimstack-labs/scoutsheet/internal/report"
	"github.com/scrimstack-labs/scoutsheet/internal/ui/notifier"
)

// SetupRoutes registers the report overview feature routes.
func SetupRoutes(
	router chi.Router,
	store *report.Store,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) {
	handlers := NewHandlers(store, sessionStore, notify, logger)

	router.Get("/", handlers.ListPage)
	router.Get("/report/{reportID}", handlers.ReportPage)

	router.Route("/api/report", func(r chi.Router) {
		r.Get("/{reportID}/map/{mapName}", handlers.SelectMapSSE)
		r.Get("/updates", handlers.UpdatesSSE)
	})
}
