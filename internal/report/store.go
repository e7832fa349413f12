package report

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Entry is one loaded report: the decoded payload wrapped in its view
// state, or a nil Overview payload when the file was malformed.
type Entry struct {
	ID       string
	Overview *Overview
}

// Available reports whether the entry's payload decoded.
func (e *Entry) Available() bool {
	return e.Overview != nil && e.Overview.Payload() != nil
}

// Store holds the report payloads embedded into preview pages, loaded from
// a directory of JSON files (one report per file, id = file name without
// extension). Reload replaces the whole set; malformed files stay listed
// as unavailable rather than disappearing.
type Store struct {
	dir    string
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewStore creates a Store over a reports directory.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger, entries: make(map[string]*Entry)}
}

// Reload re-reads every report file in the directory. A missing directory
// leaves the store empty, not failed.
func (s *Store) Reload() error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return err
	}

	entries := make(map[string]*Entry, len(files))
	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), ".json")
		entries[id] = s.loadEntry(id, path)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

func (s *Store) loadEntry(id, path string) *Entry {
	raw, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("report file unreadable", "id", id, "error", err)
		return &Entry{ID: id}
	}
	payload, err := Decode(raw)
	if err != nil {
		// Malformed payloads render as "preview unavailable".
		s.logger.Warn("report payload malformed", "id", id, "error", err)
		return &Entry{ID: id}
	}
	return &Entry{ID: id, Overview: NewOverview(payload)}
}

// Get returns the entry for a report id.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// IDs lists the loaded report ids, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
