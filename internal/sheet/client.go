package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Tab identifies one sheet within a multi-sheet document.
type Tab struct {
	GID   string `json:"gid"`
	Title string `json:"title"`
}

// SheetList is the metadata endpoint's response.
type SheetList struct {
	Sheets     []Tab  `json:"sheets"`
	DefaultGID string `json:"default_gid"`
}

// Client fetches sheet metadata, delimited exports, and snapshot images
// from the upstream document host.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client for the given upstream base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Metadata fetches the sheet listing for a document.
func (c *Client) Metadata(ctx context.Context, docID string) (SheetList, error) {
	var list SheetList

	u := fmt.Sprintf("%s/sheets/%s/meta", c.baseURL, url.PathEscape(docID))
	body, err := c.get(ctx, u)
	if err != nil {
		return list, fmt.Errorf("fetch sheet metadata: %w", err)
	}

	if err := json.Unmarshal(body, &list); err != nil {
		return list, fmt.Errorf("decode sheet metadata: %w", err)
	}
	return list, nil
}

// Export fetches the delimited export for one tab.
func (c *Client) Export(ctx context.Context, docID, gid string) (string, error) {
	u := fmt.Sprintf("%s/sheets/%s/export?format=csv&gid=%s",
		c.baseURL, url.PathEscape(docID), url.QueryEscape(gid))
	body, err := c.get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("fetch tab export: %w", err)
	}
	return string(body), nil
}

// SnapshotURL returns the snapshot image location for one tab. Probe
// decides whether anything is actually served there.
func (c *Client) SnapshotURL(docID, gid string) string {
	return fmt.Sprintf("%s/sheets/%s/snapshot?gid=%s",
		c.baseURL, url.PathEscape(docID), url.QueryEscape(gid))
}

// Probe checks whether the snapshot image for a tab exists. A missing
// snapshot is a normal outcome, not an error.
func (c *Client) Probe(ctx context.Context, docID, gid string) (string, bool) {
	u := c.SnapshotURL(docID, gid)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return "", false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Debug("snapshot probe failed", "gid", gid, "error", err)
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	return u, true
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}
	return io.ReadAll(resp.Body)
}

// GIDFromURL extracts a gid query parameter embedded in a data source URL.
// Used as the synthetic-tab fallback when metadata is unavailable; returns
// "0" when the URL carries no gid.
func GIDFromURL(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return "0"
	}
	if gid := u.Query().Get("gid"); gid != "" {
		return gid
	}
	// Sheets-style fragment: ...#gid=123
	if strings.HasPrefix(u.Fragment, "gid=") {
		if gid := strings.TrimPrefix(u.Fragment, "gid="); gid != "" {
			return gid
		}
	}
	return "0"
}
