package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/brainmapper/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return shouldExit=true.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok, "parse failures should carry an exit code")
	require.Equal(t, 2, exitErr.Code)
}

func TestRun_MissingConfigFile(t *testing.T) {
	t.Parallel()

	// Point at a config file that does not exist; the loader should fail
	// before any stage is invoked.
	args := []string{"-c", filepath.Join(t.TempDir(), "nope.json")}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed configuration")
}
