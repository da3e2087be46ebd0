// Package testutil provides shared helpers for the package tests: a
// thread-safe log capture buffer and a recording fake stage set.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/vk/brainmapper/internal/stages"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NewTestLogger returns a text logger writing into the returned buffer.
func NewTestLogger() (*slog.Logger, *SafeBuffer) {
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// StageRecorder is a fake implementation of all four stage contracts. It
// records the order of stage invocations and the last request each stage
// received, and returns whatever canned data or errors the test configures.
type StageRecorder struct {
	mu    sync.Mutex
	calls []string

	Cells  []stages.Cell
	Result *stages.TransformResult

	DetectErr    error
	TransformErr error
	SummariseErr error
	ExportErr    error

	LastDetect    stages.DetectRequest
	LastTransform stages.TransformRequest
	LastSummarise stages.SummariseRequest
	LastExport    stages.ExportRequest
}

// Set returns a stage set backed by the recorder.
func (r *StageRecorder) Set() *stages.Set {
	return &stages.Set{
		Detector:    r,
		Transformer: r,
		Summariser:  r,
		Exporter:    r,
	}
}

// Calls returns the stage names in invocation order.
func (r *StageRecorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *StageRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

// Detect implements stages.Detector.
func (r *StageRecorder) Detect(_ context.Context, req stages.DetectRequest) ([]stages.Cell, error) {
	r.record("detect")
	r.LastDetect = req
	if r.DetectErr != nil {
		return nil, r.DetectErr
	}
	return r.Cells, nil
}

// Transform implements stages.Transformer.
func (r *StageRecorder) Transform(_ context.Context, req stages.TransformRequest) (*stages.TransformResult, error) {
	r.record("transform")
	r.LastTransform = req
	if r.TransformErr != nil {
		return nil, r.TransformErr
	}
	if r.Result != nil {
		return r.Result, nil
	}
	return &stages.TransformResult{Points: req.Points}, nil
}

// Summarise implements stages.Summariser.
func (r *StageRecorder) Summarise(_ context.Context, req stages.SummariseRequest) error {
	r.record("summarise")
	r.LastSummarise = req
	return r.SummariseErr
}

// Export implements stages.Exporter.
func (r *StageRecorder) Export(_ context.Context, req stages.ExportRequest) error {
	r.record("export")
	r.LastExport = req
	return r.ExportErr
}
