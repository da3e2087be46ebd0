// Package stages defines the call contracts for the external analysis tools
// the pipeline sequences. The tools themselves are opaque collaborators;
// only their inputs and outputs are modelled here.
package stages

import "context"

// Cell is a detected cell candidate in sample space. Type distinguishes
// rejected candidates from classified cells; its values belong to the
// detection tool.
type Cell struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Type int     `json:"type"`
}

// Point is a plain coordinate triple, ordered z, y, x to match the plane
// stacking order the registration tools expect.
type Point [3]float64

// DetectRequest carries the inputs of the detection/classification stage.
type DetectRequest struct {
	SignalFiles         []string  `json:"signal_files"`
	BackgroundFiles     []string  `json:"background_files"`
	VoxelSizes          []float64 `json:"voxel_sizes"`
	SomaDiameter        float64   `json:"soma_diameter"`
	BallXYSize          float64   `json:"ball_xy_size"`
	BallZSize           float64   `json:"ball_z_size"`
	NSDsAboveMeanThresh float64   `json:"n_sds_above_mean_thresh"`
}

// Detector runs cell detection and classification over the signal and
// background planes.
type Detector interface {
	Detect(ctx context.Context, req DetectRequest) ([]Cell, error)
}

// TransformRequest carries the inputs of the point-transformation stage.
type TransformRequest struct {
	Points            []Point   `json:"points"`
	Orientation       string    `json:"orientation"`
	VoxelSizes        []float64 `json:"voxel_sizes"`
	AtlasName         string    `json:"atlas_name"`
	DeformationFields [3]string `json:"deformation_fields"`
}

// TransformResult is what the point-transformation stage hands back.
type TransformResult struct {
	// Points are the detected cells warped into atlas space.
	Points []Point `json:"points"`
	// OutOfBounds are points that fell outside the atlas volume after
	// warping. Expected near atlas boundaries; never an error.
	OutOfBounds []Point `json:"out_of_bounds"`
	// AtlasResolution is the atlas voxel resolution in microns, zyx.
	AtlasResolution [3]float64 `json:"atlas_resolution"`
}

// Transformer warps points from sample space into atlas space using the
// registration's deformation fields.
type Transformer interface {
	Transform(ctx context.Context, req TransformRequest) (*TransformResult, error)
}

// SummariseRequest carries the inputs of the region-summarisation stage. The
// tool writes the per-point and per-region tables to the given paths itself.
type SummariseRequest struct {
	Points            []Point `json:"points"`
	TransformedPoints []Point `json:"transformed_points"`
	AtlasName         string  `json:"atlas_name"`
	VolumeCSVPath     string  `json:"volume_csv_path"`
	AllPointsPath     string  `json:"all_points_path"`
	SummaryPath       string  `json:"summary_path"`
}

// Summariser assigns each point an atlas region and aggregates counts per
// region.
type Summariser interface {
	Summarise(ctx context.Context, req SummariseRequest) error
}

// ExportRequest carries the inputs of the rendering-export stage.
type ExportRequest struct {
	Points     []Point `json:"points"`
	Resolution float64 `json:"resolution"`
	OutputPath string  `json:"output_path"`
}

// Exporter writes the transformed points in a format the external rendering
// tool can load.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) error
}

// Set groups one implementation of every stage the pipeline needs.
type Set struct {
	Detector    Detector
	Transformer Transformer
	Summariser  Summariser
	Exporter    Exporter
}
