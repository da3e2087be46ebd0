// Package workflow sequences the four analysis stages over one validated
// configuration. The sequence is strictly linear with no retries; a stage
// failure aborts the run, and artifacts written by earlier stages stay on
// disk.
package workflow

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/vk/brainmapper/internal/config"
	"github.com/vk/brainmapper/internal/ctxlog"
	"github.com/vk/brainmapper/internal/stages"
)

// Run executes the pipeline to completion. ctx carries the run's logger.
func Run(ctx context.Context, cfg *config.Config, set *stages.Set) error {
	logger := ctxlog.FromContext(ctx)

	logger.Info("Detecting cells.")
	cells, err := set.Detector.Detect(ctx, stages.DetectRequest{
		SignalFiles:         cfg.SignalFiles(),
		BackgroundFiles:     cfg.BackgroundFiles(),
		VoxelSizes:          cfg.VoxelSizes,
		SomaDiameter:        cfg.SomaDiameter,
		BallXYSize:          cfg.BallXYSize,
		BallZSize:           cfg.BallZSize,
		NSDsAboveMeanThresh: cfg.NSDsAboveMeanThresh,
	})
	if err != nil {
		return fmt.Errorf("cell detection: %w", err)
	}
	if err := writeDetectedCells(cfg.DetectedCellsPath(), cells); err != nil {
		return err
	}
	logger.Info("Detected cells saved.", "count", len(cells), "path", cfg.DetectedCellsPath())

	// The registration tools take z/y/x triples, matching plane stacking
	// order.
	points := make([]stages.Point, len(cells))
	for i, cell := range cells {
		points[i] = stages.Point{cell.Z, cell.Y, cell.X}
	}

	logger.Info("Transforming points to atlas space.")
	result, err := set.Transformer.Transform(ctx, stages.TransformRequest{
		Points:            points,
		Orientation:       cfg.Orientation,
		VoxelSizes:        cfg.VoxelSizes,
		AtlasName:         cfg.AtlasName,
		DeformationFields: cfg.DeformationFields(),
	})
	if err != nil {
		return fmt.Errorf("point transformation: %w", err)
	}
	logger.Warn(
		"Points ignored due to falling outside of atlas. This may be due to "+
			"inaccuracies with cell detection or registration. Please inspect "+
			"the results.",
		"count", len(result.OutOfBounds),
	)

	logger.Info("Summarising cell positions.")
	if err := set.Summariser.Summarise(ctx, stages.SummariseRequest{
		Points:            points,
		TransformedPoints: result.Points,
		AtlasName:         cfg.AtlasName,
		VolumeCSVPath:     cfg.VolumeCSVPath,
		AllPointsPath:     cfg.AllPointsPath(),
		SummaryPath:       cfg.SummaryPath(),
	}); err != nil {
		return fmt.Errorf("region summarisation: %w", err)
	}

	logger.Info("Exporting data to brainrender.")
	if err := set.Exporter.Export(ctx, stages.ExportRequest{
		Points:     result.Points,
		Resolution: result.AtlasResolution[0],
		OutputPath: cfg.BrainrenderPointsPath(),
	}); err != nil {
		return fmt.Errorf("render export: %w", err)
	}

	return nil
}

// writeDetectedCells writes the detection stage's cells as a CSV table with
// an x,y,z,type header.
func writeDetectedCells(path string, cells []stages.Cell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating detected cells file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "z", "type"}); err != nil {
		return fmt.Errorf("writing detected cells header: %w", err)
	}
	for _, cell := range cells {
		record := []string{
			strconv.FormatFloat(cell.X, 'g', -1, 64),
			strconv.FormatFloat(cell.Y, 'g', -1, 64),
			strconv.FormatFloat(cell.Z, 'g', -1, 64),
			strconv.Itoa(cell.Type),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing detected cell: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing detected cells file: %w", err)
	}
	return nil
}
