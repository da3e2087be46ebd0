package extern

import (
	"context"

	"github.com/vk/brainmapper/internal/stages"
)

// Tools names the external commands used for each stage. Zero values fall
// back to the defaults.
type Tools struct {
	Detect    string
	Transform string
	Summarise string
	Export    string
}

// NewSet builds a stage set backed by the given external tools.
func NewSet(t Tools) *stages.Set {
	if t.Detect == "" {
		t.Detect = defaultDetectTool
	}
	if t.Transform == "" {
		t.Transform = defaultTransformTool
	}
	if t.Summarise == "" {
		t.Summarise = defaultSummariseTool
	}
	if t.Export == "" {
		t.Export = defaultExportTool
	}
	return &stages.Set{
		Detector:    &detector{tool: t.Detect},
		Transformer: &transformer{tool: t.Transform},
		Summariser:  &summariser{tool: t.Summarise},
		Exporter:    &exporter{tool: t.Export},
	}
}

// DefaultSet builds a stage set using the default tool commands.
func DefaultSet() *stages.Set {
	return NewSet(Tools{})
}

type detector struct {
	tool string
}

func (d *detector) Detect(ctx context.Context, req stages.DetectRequest) ([]stages.Cell, error) {
	var cells []stages.Cell
	if err := runTool(ctx, d.tool, req, &cells); err != nil {
		return nil, err
	}
	return cells, nil
}

type transformer struct {
	tool string
}

func (t *transformer) Transform(ctx context.Context, req stages.TransformRequest) (*stages.TransformResult, error) {
	result := &stages.TransformResult{}
	if err := runTool(ctx, t.tool, req, result); err != nil {
		return nil, err
	}
	return result, nil
}

type summariser struct {
	tool string
}

// Summarise's tool writes the per-point and per-region tables itself, so
// there is no response to decode.
func (s *summariser) Summarise(ctx context.Context, req stages.SummariseRequest) error {
	return runTool(ctx, s.tool, req, nil)
}

type exporter struct {
	tool string
}

func (e *exporter) Export(ctx context.Context, req stages.ExportRequest) error {
	return runTool(ctx, e.tool, req, nil)
}
