package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/brainmapper/internal/ctxlog"
	"github.com/vk/brainmapper/internal/fsutil"
)

// Fetcher retrieves a remote archive into destDir, verifying it against the
// given sha256 hex digest. Satisfied by fetch.Client.
type Fetcher interface {
	Retrieve(ctx context.Context, url, sha256hex, destDir string) error
}

// resolveInputs locates the signal and background plane files, fetching the
// remote archive when the configured directories are not on disk. Every
// configured directory must yield at least one plane file; anything less is a
// missing-data failure.
func (l *Loader) resolveInputs(ctx context.Context, cfg *Config) error {
	logger := ctxlog.FromContext(ctx)

	signalDirs := cfg.resolveDirs(cfg.SignalDirs)
	backgroundDirs := cfg.resolveDirs(cfg.BackgroundDirs)

	if dirsExist(signalDirs) && dirsExist(backgroundDirs) {
		logger.Info("Fetching input data from the local directories.")
	} else if cfg.DataURL != "" {
		logger.Info("Input data not found locally, fetching from the remote source.", "url", cfg.DataURL)
		if err := l.Fetcher.Retrieve(ctx, cfg.DataURL, cfg.DataHash, cfg.InputDataDir); err != nil {
			return missingDataErrorf("fetching input data from %s: %v", cfg.DataURL, err)
		}
	}

	var err error
	cfg.signalFiles, err = listPlaneFiles(signalDirs)
	if err != nil {
		return err
	}
	cfg.backgroundFiles, err = listPlaneFiles(backgroundDirs)
	if err != nil {
		return err
	}
	return nil
}

// resolveDirs makes plane directories absolute relative to InputDataDir.
func (c *Config) resolveDirs(dirs []string) []string {
	resolved := make([]string, len(dirs))
	for i, d := range dirs {
		if filepath.IsAbs(d) {
			resolved[i] = d
		} else {
			resolved[i] = filepath.Join(c.InputDataDir, d)
		}
	}
	return resolved
}

func dirsExist(dirs []string) bool {
	for _, d := range dirs {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

func listPlaneFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, missingDataErrorf("plane directory %s does not exist", dir)
		}
		planes, err := fsutil.ListImageFiles(dir)
		if err != nil {
			return nil, missingDataErrorf("listing plane directory %s: %v", dir, err)
		}
		if len(planes) == 0 {
			return nil, missingDataErrorf("plane directory %s contains no image files", dir)
		}
		files = append(files, planes...)
	}
	return files, nil
}
