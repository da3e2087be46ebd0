// Package extern implements the stage contracts by invoking the external
// analysis tools as subprocesses. Each tool is called with a request JSON
// file and, where it returns data, a response JSON file; anything the tool
// prints to stderr is attached to the error on failure.
package extern

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vk/brainmapper/internal/ctxlog"
)

// Default commands for the four analysis tools. They must be on PATH; Tools
// lets callers point at different binaries.
const (
	defaultDetectTool    = "cellfinder-detect"
	defaultTransformTool = "brainreg-transform-points"
	defaultSummariseTool = "brainglobe-summarise"
	defaultExportTool    = "brainrender-export"
)

// runTool writes req to a request file, invokes the tool, and decodes the
// response file into resp when resp is non-nil. Tool errors are returned
// unchanged apart from wrapping; translation is the caller's job to avoid.
func runTool(ctx context.Context, tool string, req, resp any) error {
	logger := ctxlog.FromContext(ctx)

	dir, err := os.MkdirTemp("", "brainmapper-"+filepath.Base(tool)+"-")
	if err != nil {
		return fmt.Errorf("creating scratch directory for %s: %w", tool, err)
	}
	defer os.RemoveAll(dir)

	reqPath := filepath.Join(dir, "request.json")
	respPath := filepath.Join(dir, "response.json")

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", tool, err)
	}
	if err := os.WriteFile(reqPath, payload, 0o644); err != nil {
		return fmt.Errorf("writing %s request: %w", tool, err)
	}

	cmd := exec.CommandContext(ctx, tool, "--request", reqPath, "--response", respPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("Invoking external tool.", "tool", tool)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", tool, err, msg)
		}
		return fmt.Errorf("%s: %w", tool, err)
	}

	if resp == nil {
		return nil
	}

	data, err := os.ReadFile(respPath)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", tool, err)
	}
	if err := json.Unmarshal(data, resp); err != nil {
		return fmt.Errorf("decoding %s response: %w", tool, err)
	}
	return nil
}
