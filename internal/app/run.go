package app

import (
	"context"

	"github.com/vk/brainmapper/internal/ctxlog"
	"github.com/vk/brainmapper/internal/workflow"
)

// Run loads the configuration and executes the analysis pipeline. Every
// failure is fatal to the run; partial artifacts from completed stages are
// left on disk.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Info("Starting brainmapper workflow.")

	cfg, err := a.loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return err
	}

	if err := workflow.Run(ctx, cfg, a.stages); err != nil {
		return err
	}

	a.logger.Info("Workflow finished.", "output_dir", cfg.OutputDir())
	return nil
}
