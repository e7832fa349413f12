// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/scrimstack-labs/scoutsheet/internal/preview"
	"github.com/scrimstack-labs/scoutsheet/internal/report"
	overviewFeature "github.com/scrimstack-labs/scoutsheet/internal/ui/features/overview"
	sheetpreviewFeature "github.com/scrimstack-labs/scoutsheet/internal/ui/features/sheetpreview"
	"github.com/scrimstack-labs/scoutsheet/internal/ui/notifier"
	"github.com/scrimstack-labs/scoutsheet/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	store *report.Store,
	registry *preview.Registry,
	fetcher preview.Fetcher,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
	logger *slog.Logger,
) {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	overviewFeature.SetupRoutes(router, store, sessionStore, notify, logger)
	sheetpreviewFeature.SetupRoutes(router, registry, fetcher, logger)
}
