package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/brainmapper/internal/app"
	"github.com/vk/brainmapper/internal/cli"
	"github.com/vk/brainmapper/internal/config"
)

// main is the entrypoint for the brainmapper workflow runner.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	configPath, shouldExit, err := cli.Parse(args, config.DefaultConfigPath, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	appConfig := &app.Config{
		ConfigPath: configPath,
		LogFormat:  "text",
		LogLevel:   "info",
	}

	brainmapperApp := app.NewApp(outW, appConfig, nil)
	return brainmapperApp.Run(context.Background(), appConfig)
}
