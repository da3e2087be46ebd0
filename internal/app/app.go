// Package app wires the brainmapper application together: an isolated
// logger, the configuration loader, and the stage implementations the
// workflow runs against.
package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vk/brainmapper/internal/config"
	"github.com/vk/brainmapper/internal/stages"
	"github.com/vk/brainmapper/internal/stages/extern"
)

// Config holds everything an App needs to run.
type Config struct {
	// ConfigPath is the workflow configuration file; empty means the
	// built-in default.
	ConfigPath string

	LogFormat string
	LogLevel  string
}

// App encapsulates one brainmapper invocation. No state survives Run.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	runID  string
	loader *config.Loader
	stages *stages.Set
}

// NewApp constructs the application with its own logger and, unless a stage
// set is supplied, the default external tool adapters. Passing a stage set is
// how tests substitute fakes.
func NewApp(outW io.Writer, appConfig *Config, set *stages.Set) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	if set == nil {
		set = extern.DefaultSet()
	}

	return &App{
		outW:   outW,
		logger: logger,
		runID:  runID,
		loader: config.NewLoader(),
		stages: set,
	}
}

// Loader exposes the app's configuration loader so tests can pin its clock.
func (a *App) Loader() *config.Loader {
	return a.loader
}
