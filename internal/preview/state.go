// Package preview holds the per-container tab and cache state machine for
// delimited-text sheet previews.
package preview

import (
	"sync"

	"github.com/google/uuid"

	"github.com/scrimstack-labs/scoutsheet/internal/sheet"
)

// ImageResult records the outcome of a snapshot probe. Unavailable
// distinguishes "tried and failed" from a gid that was never probed.
type ImageResult struct {
	URL         string
	Unavailable bool
}

// Container owns the preview state for one embedded container element.
// All fields are guarded by mu; the generation counter is bumped on every
// tab selection and compared when asynchronous work commits, so a stale
// fetch result is discarded instead of overwriting a newer selection.
type Container struct {
	ID        string
	DocID     string
	SourceURL string

	mu             sync.Mutex
	tabs           []sheet.Tab
	activeID       string
	dataCache      map[string]sheet.TableModel
	imageCache     map[string]ImageResult
	metadataLoaded bool
	generation     uint64
}

func newContainer(docID, sourceURL string) *Container {
	return &Container{
		ID:         uuid.NewString(),
		DocID:      docID,
		SourceURL:  sourceURL,
		dataCache:  make(map[string]sheet.TableModel),
		imageCache: make(map[string]ImageResult),
	}
}

// Tabs returns the resolved tab list.
func (c *Container) Tabs() []sheet.Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sheet.Tab, len(c.tabs))
	copy(out, c.tabs)
	return out
}

// ActiveID returns the currently selected tab identifier.
func (c *Container) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// CachedTable returns the parsed table for a gid, if one was cached.
func (c *Container) CachedTable(gid string) (sheet.TableModel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tbl, ok := c.dataCache[gid]
	return tbl, ok
}

// CachedImage returns the snapshot probe result for a gid, if one exists.
func (c *Container) CachedImage(gid string) (ImageResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.imageCache[gid]
	return img, ok
}

// Registry is the explicit id-keyed store of container states. Each
// container element owns exactly one entry for its lifetime on the page.
type Registry struct {
	mu         sync.Mutex
	containers map[string]*Container
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{containers: make(map[string]*Container)}
}

// Create registers a new container for a document and returns it.
func (r *Registry) Create(docID, sourceURL string) *Container {
	c := newContainer(docID, sourceURL)
	r.mu.Lock()
	r.containers[c.ID] = c
	r.mu.Unlock()
	return c
}

// Get looks up a container by id.
func (r *Registry) Get(id string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.containers[id]
	return c, ok
}

// Remove discards a container's state when its element leaves the page.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.containers, id)
	r.mu.Unlock()
}
