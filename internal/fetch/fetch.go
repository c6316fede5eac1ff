// Package fetch retrieves notice files from a remote raw-content source.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/camellia0204/notice-tray/internal/config"
)

const defaultTimeout = 10 * time.Second

// Client downloads files from a raw-content base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a fetch client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// NewFromConfig creates a fetch client using the configured remote base URL.
func NewFromConfig() *Client {
	return NewClient(config.Get("remote_base_url", ""))
}

// FetchFile downloads relPath from the base URL into destDir and returns
// the local path it was written to. The download goes through a temporary
// file so a failed transfer never clobbers an existing cached copy.
func (c *Client) FetchFile(relPath, destDir string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("fetch: base URL not configured")
	}

	url := c.baseURL + "/" + strings.TrimLeft(relPath, "/")
	resp, err := c.httpc.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch: get %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(destDir, config.FileModeDir); err != nil {
		return "", fmt.Errorf("fetch: create dest directory: %w", err)
	}

	destPath := filepath.Join(destDir, filepath.Base(relPath))
	tmp, err := os.CreateTemp(destDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("fetch: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("fetch: write %s: %w", destPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("fetch: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("fetch: move into place: %w", err)
	}

	return destPath, nil
}
