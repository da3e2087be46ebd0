package extern

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brainmapper/internal/stages"
)

// writeTool installs a shell script standing in for an external analysis
// tool. It copies the request file's "response" key handling by emitting the
// canned JSON body as its response file.
func writeTool(t *testing.T, response string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}

	script := `#!/bin/sh
req=""
resp=""
while [ $# -gt 0 ]; do
  case "$1" in
    --request) req="$2"; shift 2 ;;
    --response) resp="$2"; shift 2 ;;
    *) shift ;;
  esac
done
[ -f "$req" ] || { echo "missing request file" >&2; exit 64; }
`
	if response != "" {
		script += "printf '%s' '" + response + "' > \"$resp\"\n"
	}
	if exitCode != 0 {
		script += "echo \"tool blew up\" >&2\n"
	}
	script += "exit " + strconv.Itoa(exitCode) + "\n"

	path := filepath.Join(t.TempDir(), "fake-tool")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRunTool_RoundTrip(t *testing.T) {
	t.Parallel()

	tool := writeTool(t, `[{"x":1,"y":2,"z":3,"type":2}]`, 0)

	var cells []stages.Cell
	err := runTool(context.Background(), tool, stages.DetectRequest{SomaDiameter: 16}, &cells)

	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, 3.0, cells[0].Z)
}

func TestRunTool_NoResponseExpected(t *testing.T) {
	t.Parallel()

	tool := writeTool(t, "", 0)

	err := runTool(context.Background(), tool, stages.ExportRequest{Resolution: 25}, nil)

	require.NoError(t, err)
}

func TestRunTool_FailureCarriesStderr(t *testing.T) {
	t.Parallel()

	tool := writeTool(t, "", 3)

	err := runTool(context.Background(), tool, stages.DetectRequest{}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool blew up")
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestNewSet_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	set := NewSet(Tools{Detect: "my-detector"})

	d, ok := set.Detector.(*detector)
	require.True(t, ok)
	assert.Equal(t, "my-detector", d.tool)

	tr, ok := set.Transformer.(*transformer)
	require.True(t, ok)
	assert.Equal(t, defaultTransformTool, tr.tool)
}

func TestDetector_UsesConfiguredTool(t *testing.T) {
	t.Parallel()

	tool := writeTool(t, `[{"x":5,"y":6,"z":7,"type":1}]`, 0)
	set := NewSet(Tools{Detect: tool})

	cells, err := set.Detector.Detect(context.Background(), stages.DetectRequest{})

	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, 5.0, cells[0].X)
}
