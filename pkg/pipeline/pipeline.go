// Package pipeline provides the analyze → layout → render pipeline for taskmap.
//
// The CLI and the HTTP API both run tasks through a [Runner] so caching,
// logging, and option handling behave the same from every entry point.
//
// # Stages
//
//  1. Analyze: cycle flags, depths, cycle paths, and dependency info
//  2. Layout: force-directed positions and curved edge paths
//  3. Render: SVG, DOT, JSON, PDF, or PNG artifacts
//
// Analysis is a pure function of the task list and is cached under the
// list's content fingerprint. Layouts are recomputed on every run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, tasks, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, a, err := runner.Analyze(ctx, tasks, opts)
//	l, err := runner.ComputeLayout(ctx, g, a, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/errors"
	"github.com/matzehuels/taskmap/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultEngine draws with the force layout and the native SVG sink.
	DefaultEngine = graph.EngineNative

	// DefaultPNGScale is the rasterization scale for PNG output.
	DefaultPNGScale = 2.0

	// DefaultAnalysisTTL is how long cached analyses live.
	DefaultAnalysisTTL = 24 * time.Hour

	// MaxIterations bounds the simulation length accepted from callers.
	MaxIterations = 10000

	// MaxCanvas bounds the canvas width and height accepted from callers.
	MaxCanvas = 20000.0

	// MaxTasks bounds the task lists accepted from API callers. Repulsion is
	// quadratic in the task count.
	MaxTasks = 5000
)

// Format constants for output formats.
const (
	FormatSVG  = graph.FormatSVG
	FormatDOT  = graph.FormatDOT
	FormatJSON = graph.FormatJSON
	FormatPDF  = graph.FormatPDF
	FormatPNG  = graph.FormatPNG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// ValidEngines is the set of supported rendering engines.
var ValidEngines = map[string]bool{
	graph.EngineNative:   true,
	graph.EngineGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Layout graph.Config `json:"layout"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	Engine        string   `json:"engine,omitempty"`
	Title         string   `json:"title,omitempty"`
	NoInteraction bool     `json:"no_interaction,omitempty"`
	PNGScale      float64  `json:"png_scale,omitempty"`

	// Refresh skips the analysis cache lookup.
	Refresh bool `json:"refresh,omitempty"`

	// Logger replaces the runner's logger for this run when set.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string

	Graph     *taskgraph.Graph
	Analysis  graph.Analysis
	Layout    graph.Layout
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount   int
	EdgeCount   int
	CycleCount  int
	MaxDepth    int
	AnalyzeTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	AnalysisHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dot, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidOption,
			"invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ValidateLayout rejects parameters that are not finite or exceed the
// accepted bounds. Zero and negative values are left for defaulting.
func ValidateLayout(c graph.Config) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"padding", c.Padding},
		{"node_radius", c.NodeRadius},
		{"repulsion", c.Repulsion},
		{"spring", c.Spring},
		{"damping", c.Damping},
		{"curvature", c.Curvature},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidOption, "%s must be finite", f.name)
		}
	}
	if c.Width > MaxCanvas || c.Height > MaxCanvas {
		return errors.New(errors.ErrCodeInvalidOption, "canvas too large (max %.0fx%.0f)", MaxCanvas, MaxCanvas)
	}
	if c.Iterations > MaxIterations {
		return errors.New(errors.ErrCodeInvalidOption, "iterations too large (max %d), got %d", MaxIterations, c.Iterations)
	}
	return nil
}

// ValidateTaskCount rejects task lists longer than MaxTasks.
func ValidateTaskCount(n int) error {
	if n > MaxTasks {
		return errors.New(errors.ErrCodeInvalidInput, "too many tasks (max %d), got %d", MaxTasks, n)
	}
	return nil
}

// ParseFormats splits a comma-separated format list. Empty input yields svg.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults validates every option and applies defaults for
// the full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.WithDefaults()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
}

// ValidateForRender validates and sets defaults for layout and rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Summary returns a one-line description for logs.
func (o *Options) Summary() string {
	return fmt.Sprintf("%s %s %.0fx%.0f", o.Engine, strings.Join(o.Formats, ","), o.Layout.Width, o.Layout.Height)
}
