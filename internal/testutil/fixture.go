package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteWorkflowFixture lays out a complete input tree (signal and background
// planes, registration files) under a temp directory and writes a config
// JSON referencing it. It returns the config path and the data root.
func WriteWorkflowFixture(t *testing.T) (string, string) {
	t.Helper()

	dataRoot := t.TempDir()
	for _, sub := range []string{"signal", "background"} {
		dir := filepath.Join(dataRoot, sub)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, name := range []string{"plane_000.tif", "plane_001.tif"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("tiff"), 0o644))
		}
	}

	regDir := filepath.Join(dataRoot, "registration")
	require.NoError(t, os.MkdirAll(regDir, 0o755))
	for _, name := range []string{"deformation_field_0.tiff", "deformation_field_1.tiff", "deformation_field_2.tiff", "volumes.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(regDir, name), []byte("x"), 0o644))
	}

	doc := map[string]any{
		"input_data_dir":          dataRoot,
		"signal_dirs":             []string{"signal"},
		"background_dirs":         []string{"background"},
		"voxel_sizes":             []float64{5, 2, 2},
		"orientation":             "asr",
		"atlas_name":              "allen_mouse_25um",
		"soma_diameter":           16.0,
		"ball_xy_size":            6.0,
		"ball_z_size":             15.0,
		"n_sds_above_mean_thresh": 10.0,
		"deformation_field_0":     filepath.Join(regDir, "deformation_field_0.tiff"),
		"deformation_field_1":     filepath.Join(regDir, "deformation_field_1.tiff"),
		"deformation_field_2":     filepath.Join(regDir, "deformation_field_2.tiff"),
		"volume_csv_path":         filepath.Join(regDir, "volumes.csv"),
		"output_parent_dir":       filepath.Join(dataRoot, "out"),
		"output_dir_basename":     "run_",
		"detected_cells_filename": "detected_cells.csv",
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, data, 0o644))
	return configPath, dataRoot
}
