package config

import (
	"path/filepath"
	"time"
)

// timestampLayout gives day-and-time granularity so repeated runs on the same
// day land in distinct directories.
const timestampLayout = "20060102_150405"

// deriveOutputDir computes the run's output directory from the configured
// parent, the basename template and the supplied timestamp. Deterministic for
// a fixed timestamp.
func (c *Config) deriveOutputDir(now time.Time) {
	c.outputDir = filepath.Join(c.OutputParentDir, c.OutputDirBasename+now.Format(timestampLayout))
}

// DetectedCellsPath is where the detection stage's cell table is written.
func (c *Config) DetectedCellsPath() string {
	return filepath.Join(c.outputDir, c.DetectedCellsFilename)
}

// AllPointsPath is where the per-point atlas assignment table is written.
func (c *Config) AllPointsPath() string {
	return filepath.Join(c.outputDir, allPointsFilename)
}

// SummaryPath is where the per-region summary table is written.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.outputDir, summaryFilename)
}

// BrainrenderPointsPath is where the transformed points are exported for
// rendering.
func (c *Config) BrainrenderPointsPath() string {
	return filepath.Join(c.outputDir, brainrenderPointsFilename)
}
