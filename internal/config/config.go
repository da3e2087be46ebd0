package config

// Config is the full brainmapper run configuration. The exported,
// tag-annotated fields form the static schema of the JSON config file; a
// document whose keys are not a subset of them is rejected during
// deserialization. The unexported fields are derived once at load time and
// never persisted.
type Config struct {
	// Source data. When the plane directories are not found locally the
	// archive at DataURL is fetched into InputDataDir and verified against
	// DataHash (sha256, hex).
	DataURL      string `mapstructure:"data_url"`
	DataHash     string `mapstructure:"data_hash"`
	InputDataDir string `mapstructure:"input_data_dir" validate:"required"`

	// Per-channel plane directories, relative to InputDataDir unless absolute.
	SignalDirs     []string `mapstructure:"signal_dirs" validate:"required,min=1"`
	BackgroundDirs []string `mapstructure:"background_dirs" validate:"required,min=1"`

	// Sample geometry.
	VoxelSizes  []float64 `mapstructure:"voxel_sizes" validate:"required,len=3,dive,gt=0"`
	Orientation string    `mapstructure:"orientation" validate:"required,len=3,alpha"`

	// Detection and classification thresholds, passed through to the
	// detection tool untouched.
	SomaDiameter        float64 `mapstructure:"soma_diameter" validate:"gt=0"`
	BallXYSize          float64 `mapstructure:"ball_xy_size" validate:"gt=0"`
	BallZSize           float64 `mapstructure:"ball_z_size" validate:"gt=0"`
	NSDsAboveMeanThresh float64 `mapstructure:"n_sds_above_mean_thresh" validate:"gt=0"`

	// Registration inputs.
	AtlasName         string `mapstructure:"atlas_name" validate:"required"`
	DeformationField0 string `mapstructure:"deformation_field_0" validate:"required"`
	DeformationField1 string `mapstructure:"deformation_field_1" validate:"required"`
	DeformationField2 string `mapstructure:"deformation_field_2" validate:"required"`
	VolumeCSVPath     string `mapstructure:"volume_csv_path" validate:"required"`

	// Output layout.
	OutputParentDir       string `mapstructure:"output_parent_dir" validate:"required"`
	OutputDirBasename     string `mapstructure:"output_dir_basename" validate:"required"`
	DetectedCellsFilename string `mapstructure:"detected_cells_filename" validate:"required"`

	// Derived at load time.
	signalFiles     []string
	backgroundFiles []string
	outputDir       string
}

// Fixed per-artifact file names inside the run's output directory. The
// detected-cells name comes from the config so existing downstream tooling
// keeps working.
const (
	allPointsFilename         = "all_points.csv"
	summaryFilename           = "summary.csv"
	brainrenderPointsFilename = "points.npy"
)

// SignalFiles returns the resolved signal plane files, in plane order.
func (c *Config) SignalFiles() []string { return c.signalFiles }

// BackgroundFiles returns the resolved background plane files, in plane order.
func (c *Config) BackgroundFiles() []string { return c.backgroundFiles }

// OutputDir returns the timestamped directory all run artifacts are written to.
func (c *Config) OutputDir() string { return c.outputDir }

// DeformationFields returns the three per-axis deformation field paths in
// axis order.
func (c *Config) DeformationFields() [3]string {
	return [3]string{c.DeformationField0, c.DeformationField1, c.DeformationField2}
}
