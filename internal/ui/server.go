// Package ui provides the web preview server for ScoutSheet.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/scrimstack-labs/scoutsheet/internal/preview"
	"github.com/scrimstack-labs/scoutsheet/internal/report"
	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
	"github.com/scrimstack-labs/scoutsheet/internal/ui/notifier"
	"github.com/scrimstack-labs/scoutsheet/internal/ui/router"
)

// Server is the main preview server.
type Server struct {
	store        *report.Store
	registry     *preview.Registry
	client       *sheet.Client
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	reportsDir   string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the preview server.
type Config struct {
	Store         *report.Store
	Registry      *preview.Registry
	Client        *sheet.Client
	Port          int
	Watch         bool
	SessionSecret string
	ReportsDir    string
	Logger        *slog.Logger
}

// NewServer creates a new preview server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		store:        cfg.Store,
		registry:     cfg.Registry,
		client:       cfg.Client,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		reportsDir:   cfg.ReportsDir,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Serve starts the preview server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting preview server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, s.store, s.registry, s.client, s.sessionStore, s.notifier, s.logger)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start report directory watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchReports(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down preview server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchReports watches the reports directory and reloads the store when a
// payload file changes.
func (s *Server) watchReports(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.reportsDir); err != nil {
		s.logger.Error("failed to watch reports directory", "dir", s.reportsDir, "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("report changed, reloading", "file", event.Name)

				if err := s.store.Reload(); err != nil {
					s.logger.Error("report reload failed", "error", err)
					return
				}

				// Notify all SSE clients
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
