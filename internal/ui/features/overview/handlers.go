package overview

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/scrimstack-labs/scoutsheet/internal/report"
	"github.com/scrimstack-labs/scoutsheet/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the report overview feature.
type Handlers struct {
	store    *report.Store
	sessions sessions.Store
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *report.Store, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, sessions: sessionStore, notifier: notify, logger: logger}
}

// ListPage renders the report index.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	h.writeHTML(w, "list", ListData{IDs: h.store.IDs()})
}

// ReportPage renders one report. A malformed or missing payload renders
// the unavailable placeholder; nothing propagates.
func (h *Handlers) ReportPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	entry, ok := h.store.Get(id)
	if !ok || !entry.Available() {
		h.writeHTML(w, "unavailable", nil)
		return
	}

	o := entry.Overview
	if o.EnsureRendered() {
		h.logger.Debug("report first render", "id", id)
	}

	// The visitor's last active map lives in their session; Selection
	// falls back to the first map for new visitors.
	sel := o.Selection(h.sessionMap(r, id))
	h.writeHTML(w, "page", PageData{
		ID:       id,
		Card:     o.Card(),
		Matches:  o.Matches(),
		Fragment: selectionFragment{ReportID: id, MapSelection: sel},
	})
}

// SelectMapSSE switches the active map and patches the tab strip, summary
// table, and detail panel together.
func (h *Handlers) SelectMapSSE(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	name := chi.URLParam(r, "mapName")

	entry, ok := h.store.Get(id)
	if !ok || !entry.Available() {
		http.Error(w, "unknown report", http.StatusNotFound)
		return
	}

	if !entry.Overview.HasMap(name) {
		// Unknown names keep the visitor's current selection.
		name = h.sessionMap(r, id)
	}
	sel := entry.Overview.Selection(name)
	h.saveSessionMap(w, r, id, sel.ActiveMap)

	sse := datastar.NewSSE(w, r)
	frag := selectionFragment{ReportID: id, MapSelection: sel}
	for _, tmpl := range []string{"map-tabs", "map-summary", "map-detail"} {
		html, err := renderFragment(tmpl, frag)
		if err != nil {
			h.logger.Error("fragment render failed", "fragment", tmpl, "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Debug("sse patch dropped", "fragment", tmpl, "error", err)
			return
		}
	}
}

// UpdatesSSE holds a connection open and reloads the page when the
// reports directory changes under the watcher.
func (h *Handlers) UpdatesSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ch := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(ch)

	select {
	case <-ch:
		_ = sse.ExecuteScript("window.location.reload()")
	case <-r.Context().Done():
	}
}

func (h *Handlers) sessionMap(r *http.Request, reportID string) string {
	sess, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return ""
	}
	name, _ := sess.Values["map:"+reportID].(string)
	return name
}

func (h *Handlers) saveSessionMap(w http.ResponseWriter, r *http.Request, reportID, name string) {
	sess, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return
	}
	sess.Values["map:"+reportID] = name
	if err := sess.Save(r, w); err != nil {
		h.logger.Debug("session save failed", "error", err)
	}
}

func (h *Handlers) writeHTML(w http.ResponseWriter, name string, data any) {
	html, err := renderFragment(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
