package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/vk/brainmapper/internal/ctxlog"
	"github.com/vk/brainmapper/internal/fetch"
)

// DefaultConfigPath is the configuration shipped with the repository, used
// when no path is given on the command line.
var DefaultConfigPath = filepath.Join("configs", "brainmapper.json")

// Loader reads, validates and derives a run configuration. The clock is a
// field so tests can pin the timestamp and assert exact derived paths.
type Loader struct {
	Now     func() time.Time
	Fetcher Fetcher
}

// NewLoader returns a Loader with the real clock and the default HTTP fetcher.
func NewLoader() *Loader {
	return &Loader{
		Now:     time.Now,
		Fetcher: fetch.NewClient(),
	}
}

// Load builds a fully-populated configuration from the JSON document at path,
// or from the built-in default when path is empty. On return the input plane
// files are resolved, the output directory exists, and every artifact path is
// derived. Any failure is fatal; there is no partial-config recovery.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	if path == "" || path == DefaultConfigPath {
		path = DefaultConfigPath
		logger.Info("Using default config file.", "path", path)
	} else {
		logger.Info("Using config file.", "path", path)
	}

	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	// Inputs are validated before the output directory is touched, so a
	// missing-data failure leaves no empty run directory behind.
	if err := l.resolveInputs(ctx, cfg); err != nil {
		return nil, err
	}

	cfg.deriveOutputDir(l.Now())
	if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
		return nil, filesystemErrorf("creating output directory %s: %v", cfg.outputDir, err)
	}
	logger.Info("Output directory created.", "path", cfg.outputDir)

	return cfg, nil
}

// readConfig parses the JSON document into the static schema. Unknown keys
// are rejected by the exact unmarshal; field values are then checked against
// the schema's validation tags.
func readConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, parseErrorf("reading %s: %v", path, err)
	}

	cfg := &Config{}
	if err := v.UnmarshalExact(cfg); err != nil {
		return nil, schemaErrorf("decoding %s: %v", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, schemaErrorf("validating %s: %v", path, err)
	}
	return cfg, nil
}
