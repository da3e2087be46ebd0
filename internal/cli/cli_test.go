package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoArgsReturnsDefault(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	path, shouldExit, err := Parse([]string{}, "configs/brainmapper.json", out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "configs/brainmapper.json", path)
}

func TestParse_ShortFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	path, shouldExit, err := Parse([]string{"-c", "/tmp/x.json"}, "default.json", out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "/tmp/x.json", path)
}

func TestParse_LongFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	path, _, err := Parse([]string{"--config", "/tmp/y.json"}, "default.json", out)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/y.json", path)
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"--not-a-flag"}, "default.json", out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected an ExitError")
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_UnexpectedPositionalArg(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"stray"}, "default.json", out)

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected an ExitError")
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := Parse([]string{"-h"}, "default.json", out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}
