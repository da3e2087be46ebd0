package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArchive returns a zip holding the given name→content entries and its
// sha256 hex digest.
func buildArchive(t *testing.T, entries map[string]string) ([]byte, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	sum := sha256.Sum256(buf.Bytes())
	return buf.Bytes(), hex.EncodeToString(sum[:])
}

func serveArchive(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRetrieve_DownloadsVerifiesAndExtracts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	archive, digest := buildArchive(t, map[string]string{
		"signal/plane_000.tif":     "signal data",
		"background/plane_000.tif": "background data",
	})
	server := serveArchive(t, archive)
	destDir := filepath.Join(t.TempDir(), "data")

	// --- Act ---
	err := NewClient().Retrieve(context.Background(), server.URL, digest, destDir)

	// --- Assert ---
	require.NoError(t, err)

	content, readErr := os.ReadFile(filepath.Join(destDir, "signal", "plane_000.tif"))
	require.NoError(t, readErr)
	assert.Equal(t, "signal data", string(content))

	_, statErr := os.Stat(filepath.Join(destDir, "background", "plane_000.tif"))
	assert.NoError(t, statErr)
}

func TestRetrieve_DigestMismatch(t *testing.T) {
	t.Parallel()

	archive, _ := buildArchive(t, map[string]string{"a.tif": "x"})
	server := serveArchive(t, archive)
	destDir := t.TempDir()

	err := NewClient().Retrieve(context.Background(), server.URL, "deadbeef", destDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}

func TestRetrieve_SkipsVerificationWithoutDigest(t *testing.T) {
	t.Parallel()

	archive, _ := buildArchive(t, map[string]string{"a.tif": "x"})
	server := serveArchive(t, archive)
	destDir := filepath.Join(t.TempDir(), "data")

	err := NewClient().Retrieve(context.Background(), server.URL, "", destDir)

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(destDir, "a.tif"))
	assert.NoError(t, statErr)
}

func TestRetrieve_NonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	err := NewClient().Retrieve(context.Background(), server.URL, "", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestExtractZip_RejectsEscapingEntries(t *testing.T) {
	t.Parallel()

	// Hand-build an archive whose entry path climbs out of the destination.
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	f, err := w.Create("../escape.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	archivePath := filepath.Join(t.TempDir(), "evil.zip")
	require.NoError(t, os.WriteFile(archivePath, buf.Bytes(), 0o644))

	err = extractZip(archivePath, filepath.Join(t.TempDir(), "dest"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}
