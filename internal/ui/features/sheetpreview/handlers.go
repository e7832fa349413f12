package sheetpreview

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/scrimstack-labs/scoutsheet/internal/preview"
	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// Handlers provides HTTP handlers for the sheet preview feature.
type Handlers struct {
	registry *preview.Registry
	fetcher  preview.Fetcher
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(registry *preview.Registry, fetcher preview.Fetcher, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{registry: registry, fetcher: fetcher, logger: logger}
}

// CreateContainer registers a preview container and resolves its tab
// metadata (at most once per container).
func (h *Handlers) CreateContainer(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DocID == "" {
		http.Error(w, "doc_id is required", http.StatusBadRequest)
		return
	}

	c := h.registry.Create(req.DocID, req.SourceURL)
	machine := preview.NewMachine(h.fetcher, noopSink{}, h.logger)
	active := machine.EnsureMetadata(r.Context(), c)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CreateResponse{
		ContainerID: c.ID,
		Tabs:        c.Tabs(),
		ActiveGID:   active,
	})
}

// PreviewPage renders the container page shell. Content is filled by the
// data-init tab selection so toggling the panel repeats no work.
func (h *Handlers) PreviewPage(w http.ResponseWriter, r *http.Request) {
	c, ok := h.container(w, r)
	if !ok {
		return
	}

	active := c.ActiveID()
	if active == "" {
		machine := preview.NewMachine(h.fetcher, noopSink{}, h.logger)
		active = machine.EnsureMetadata(r.Context(), c)
	}

	data := PageData{
		ContainerID: c.ID,
		DocID:       c.DocID,
		SourceURL:   c.SourceURL,
		Tabs:        TabStripData{ContainerID: c.ID, Tabs: c.Tabs(), ActiveGID: active},
	}
	html, err := renderFragment("page", data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// SelectTabSSE drives a tab selection and streams the resulting view
// patches. The machine runs synchronously in this request goroutine; a
// faster selection from another request wins via the container's
// generation counter, and this stream then simply carries no commit.
func (h *Handlers) SelectTabSSE(w http.ResponseWriter, r *http.Request) {
	c, ok := h.container(w, r)
	if !ok {
		return
	}
	gid := chi.URLParam(r, "gid")

	sse := datastar.NewSSE(w, r)
	machine := preview.NewMachine(h.fetcher, &sseSink{sse: sse, logger: h.logger}, h.logger)
	machine.SelectTab(r.Context(), c, gid)
}

// DeleteContainer drops a preview container and its caches.
func (h *Handlers) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	c, ok := h.container(w, r)
	if !ok {
		return
	}
	h.registry.Remove(c.ID)
	w.WriteHeader(http.StatusNoContent)
}

// TabsJSON exposes the resolved tab list for a container.
func (h *Handlers) TabsJSON(w http.ResponseWriter, r *http.Request) {
	c, ok := h.container(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tabs":   c.Tabs(),
		"active": c.ActiveID(),
	})
}

func (h *Handlers) container(w http.ResponseWriter, r *http.Request) (*preview.Container, bool) {
	id := chi.URLParam(r, "containerID")
	c, ok := h.registry.Get(id)
	if !ok {
		http.Error(w, "unknown preview container", http.StatusNotFound)
		return nil, false
	}
	return c, true
}

// sseSink turns machine render calls into datastar element patches.
type sseSink struct {
	sse    *datastar.ServerSentEventGenerator
	logger *slog.Logger
}

func (s *sseSink) patch(name string, data any) {
	html, err := renderFragment(name, data)
	if err != nil {
		s.logger.Error("fragment render failed", "fragment", name, "error", err)
		return
	}
	if err := s.sse.PatchElements(html); err != nil {
		s.logger.Debug("sse patch dropped", "fragment", name, "error", err)
	}
}

func (s *sseSink) Tabs(c *preview.Container, tabs []sheet.Tab, active string) {
	s.patch("tabs", TabStripData{ContainerID: c.ID, Tabs: tabs, ActiveGID: active})
}

func (s *sseSink) Loading(c *preview.Container, gid string) {
	s.patch("panel", PanelData{ContainerID: c.ID, GID: gid, Loading: true})
}

func (s *sseSink) Table(c *preview.Container, gid string, tbl sheet.TableModel) {
	s.patch("panel", PanelData{ContainerID: c.ID, GID: gid, Table: buildTableView(tbl)})
}

func (s *sseSink) Error(c *preview.Container, gid, msg string) {
	s.patch("panel", PanelData{ContainerID: c.ID, GID: gid, Error: msg})
}

func (s *sseSink) Image(c *preview.Container, gid, url string) {
	s.patch("snapshot", PanelData{ContainerID: c.ID, GID: gid, Snapshot: url})
}

// noopSink discards render calls; used where only metadata resolution or
// cache warming is wanted.
type noopSink struct{}

func (noopSink) Tabs(*preview.Container, []sheet.Tab, string)         {}
func (noopSink) Loading(*preview.Container, string)                   {}
func (noopSink) Table(*preview.Container, string, sheet.TableModel)   {}
func (noopSink) Error(*preview.Container, string, string)             {}
func (noopSink) Image(*preview.Container, string, string)             {}
