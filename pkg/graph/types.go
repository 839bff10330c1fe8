package graph

import (
	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/layout/geometry"
)

// =============================================================================
// Constants
// =============================================================================

// Output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// Layout engines.
const (
	EngineNative   = "native"   // force simulation, drawn by the SVG sink
	EngineGraphviz = "graphviz" // Graphviz's layered layout
)

// =============================================================================
// Analysis
// =============================================================================

// Analysis is the per-task structural report for a task list.
type Analysis struct {
	Tasks         []TaskReport `json:"tasks" bson:"tasks"`
	Cycles        [][]int      `json:"cycles" bson:"cycles"`
	HasCycles     bool         `json:"has_cycles" bson:"has_cycles"`
	MaxDepth      int          `json:"max_depth" bson:"max_depth"`
	Fingerprint   string       `json:"fingerprint,omitempty" bson:"fingerprint,omitempty"`
	AffectedTasks []int        `json:"affected_tasks" bson:"affected_tasks"`
}

// TaskReport describes one task.
type TaskReport struct {
	ID        int    `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Depth     int    `json:"depth" bson:"depth"`
	InCycle   bool   `json:"in_cycle" bson:"in_cycle"`
	BlockedBy []int  `json:"blocked_by" bson:"blocked_by"`
	Blocks    []int  `json:"blocks" bson:"blocks"`
	Dangling  []int  `json:"dangling,omitempty" bson:"dangling,omitempty"`
}

// CycleReport summarizes the cycles of a task list.
type CycleReport struct {
	HasCycles     bool    `json:"has_cycles"`
	CycleCount    int     `json:"cycle_count"`
	Cycles        [][]int `json:"cycles"`
	AffectedTasks []int   `json:"affected_tasks"`
}

// =============================================================================
// Layout
// =============================================================================

// Config is the full set of parameters a layout was computed with.
type Config struct {
	force.Options `bson:",inline"`
	Curvature     float64 `json:"curvature" bson:"curvature" toml:"curvature"`
}

// DefaultConfig returns the reference layout parameters.
func DefaultConfig() Config {
	return Config{Options: force.DefaultOptions(), Curvature: geometry.DefaultCurvature}
}

// WithDefaults fills zero fields of c with their defaults.
func (c Config) WithDefaults() Config {
	c.Options = c.Options.WithDefaults()
	if c.Curvature == 0 {
		c.Curvature = geometry.DefaultCurvature
	}
	return c
}

// Layout is a computed, serializable drawing of a task graph.
type Layout struct {
	Config Config       `json:"config" bson:"config"`
	Nodes  []LayoutNode `json:"nodes" bson:"nodes"`
	Edges  []LayoutEdge `json:"edges" bson:"edges"`
}

// LayoutNode is a positioned task.
type LayoutNode struct {
	ID      int     `json:"id" bson:"id"`
	Title   string  `json:"title" bson:"title"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Depth   int     `json:"depth" bson:"depth"`
	InCycle bool    `json:"in_cycle" bson:"in_cycle"`
	Related []int   `json:"related,omitempty" bson:"related,omitempty"`
}

// LayoutEdge is a drawable dependency edge.
type LayoutEdge struct {
	From    int           `json:"from" bson:"from"`
	To      int           `json:"to" bson:"to"`
	Path    geometry.Path `json:"path" bson:"path"`
	D       string        `json:"d" bson:"d"`
	InCycle bool          `json:"in_cycle,omitempty" bson:"in_cycle,omitempty"`
}
