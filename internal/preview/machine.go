package preview

import (
	"context"
	"log/slog"

	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// Fetcher is the upstream access the machine needs. *sheet.Client
// satisfies it.
type Fetcher interface {
	Metadata(ctx context.Context, docID string) (sheet.SheetList, error)
	Export(ctx context.Context, docID, gid string) (string, error)
	Probe(ctx context.Context, docID, gid string) (string, bool)
}

// Sink receives render updates for a container. Implementations turn them
// into UI patches; the machine itself stays presentation-free. Image with
// an empty url clears the snapshot figure.
type Sink interface {
	Tabs(c *Container, tabs []sheet.Tab, activeID string)
	Loading(c *Container, gid string)
	Table(c *Container, gid string, tbl sheet.TableModel)
	Error(c *Container, gid, msg string)
	Image(c *Container, gid, url string)
}

// Machine drives tab selection, metadata resolution, and per-tab caching.
// Methods are synchronous; callers invoke them from their own goroutines
// (one per request), and the container's generation counter is the sole
// guard against a slow fetch overwriting a newer selection.
type Machine struct {
	fetcher Fetcher
	sink    Sink
	logger  *slog.Logger
}

// NewMachine wires a Machine to its upstream and render sink.
func NewMachine(fetcher Fetcher, sink Sink, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{fetcher: fetcher, sink: sink, logger: logger}
}

// EnsureMetadata resolves the tab listing at most once per container and
// returns the tab to select initially. A failed or empty listing falls back
// to a single synthetic tab derived from the source URL's gid, or "0".
func (m *Machine) EnsureMetadata(ctx context.Context, c *Container) string {
	c.mu.Lock()
	if c.metadataLoaded {
		def := c.activeID
		if def == "" && len(c.tabs) > 0 {
			def = c.tabs[0].GID
		}
		c.mu.Unlock()
		return def
	}
	c.mu.Unlock()

	tabs, def := m.resolveTabs(ctx, c)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metadataLoaded {
		// Another request resolved metadata while we fetched.
		if c.activeID != "" {
			return c.activeID
		}
		return def
	}
	c.metadataLoaded = true
	c.tabs = tabs
	return def
}

func (m *Machine) resolveTabs(ctx context.Context, c *Container) ([]sheet.Tab, string) {
	list, err := m.fetcher.Metadata(ctx, c.DocID)
	if err != nil || len(list.Sheets) == 0 {
		if err != nil {
			m.logger.Debug("sheet metadata unavailable, using synthetic tab",
				"doc", c.DocID, "error", err)
		}
		gid := sheet.GIDFromURL(c.SourceURL)
		return []sheet.Tab{{GID: gid, Title: "Sheet"}}, gid
	}

	def := list.DefaultGID
	if def == "" {
		def = list.Sheets[0].GID
	}
	return list.Sheets, def
}

// SelectTab makes gid the active tab, re-renders the tab strip, and loads
// the tab's content. Cached tables render without a network fetch; a miss
// fetches, parses, caches, and commits only if the selection is still
// current when the fetch resolves.
func (m *Machine) SelectTab(ctx context.Context, c *Container, gid string) {
	c.mu.Lock()
	c.activeID = gid
	c.generation++
	gen := c.generation
	tabs := make([]sheet.Tab, len(c.tabs))
	copy(tabs, c.tabs)
	cached, hit := c.dataCache[gid]
	c.mu.Unlock()

	m.sink.Tabs(c, tabs, gid)

	if hit {
		m.sink.Table(c, gid, cached)
		m.resolveImage(ctx, c, gid, gen)
		return
	}

	m.sink.Loading(c, gid)

	raw, err := m.fetcher.Export(ctx, c.DocID, gid)
	if err != nil {
		// Surface the error only while this selection is current, and
		// leave the cache untouched so a reselect retries. The snapshot
		// figure is cleared so the previous tab's image does not linger.
		if c.stillCurrent(gen) {
			m.sink.Image(c, gid, "")
			m.sink.Error(c, gid, "Could not load this tab. Select it again to retry.")
		}
		return
	}

	tbl := sheet.BuildTableData(sheet.ParseDelimited(raw))

	c.mu.Lock()
	c.dataCache[gid] = tbl
	current := c.generation == gen
	c.mu.Unlock()

	if !current {
		// A faster second selection won; discard silently.
		return
	}

	m.sink.Table(c, gid, tbl)
	m.resolveImage(ctx, c, gid, gen)
}

// resolveImage probes the tab snapshot, best-effort and independent of the
// table fetch. Both outcomes are cached so a probe runs once per gid. The
// sink is always told the outcome while the tab is still selected: an
// unavailable snapshot clears the figure, otherwise the previous tab's
// image would stay on screen under the new tab.
func (m *Machine) resolveImage(ctx context.Context, c *Container, gid string, gen uint64) {
	c.mu.Lock()
	img, seen := c.imageCache[gid]
	c.mu.Unlock()

	if !seen {
		url, ok := m.fetcher.Probe(ctx, c.DocID, gid)
		img = ImageResult{URL: url, Unavailable: !ok}

		c.mu.Lock()
		c.imageCache[gid] = img
		c.mu.Unlock()
	}

	if !c.stillCurrent(gen) {
		return
	}
	if img.Unavailable {
		m.sink.Image(c, gid, "")
		return
	}
	m.sink.Image(c, gid, img.URL)
}

func (c *Container) stillCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == gen
}
