// Package fetch retrieves remote input-data archives, verifies their
// integrity against a sha256 digest, and extracts them locally.
package fetch

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/brainmapper/internal/ctxlog"
)

// Client downloads and extracts input-data archives. One client is shared
// across a run to reuse TCP connections.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client with a transport tuned for a single large
// archive download.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
	}
}

// Retrieve downloads the zip archive at url into a temporary file, verifies
// it against the sha256 hex digest when one is given, and extracts it into
// destDir. The temporary file is removed in all cases.
func (c *Client) Retrieve(ctx context.Context, url, sha256hex, destDir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Downloading input data archive.", "url", url)

	tmp, err := os.CreateTemp("", "brainmapper-data-*.zip")
	if err != nil {
		return fmt.Errorf("creating temporary archive file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := c.download(ctx, url, sha256hex, tmp); err != nil {
		return err
	}

	logger.Info("Extracting input data archive.", "dest", destDir)
	return extractZip(tmp.Name(), destDir)
}

func (c *Client) download(ctx context.Context, url, sha256hex string, dst *os.File) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	hasher := sha256.New()
	if _, err := io.Copy(dst, io.TeeReader(resp.Body, hasher)); err != nil {
		return fmt.Errorf("writing archive to disk: %w", err)
	}

	if sha256hex != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(got, sha256hex) {
			return fmt.Errorf("archive digest mismatch: got %s, want %s", got, sha256hex)
		}
	}
	return nil
}

// extractZip unpacks the archive into destDir, refusing entries that would
// escape it.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes destination directory", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %q: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
