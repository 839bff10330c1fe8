package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
)

// NewAnalysis runs cycle detection, depth calculation, and dependency info
// over g and assembles the report. Tasks appear in graph input order.
func NewAnalysis(g *taskgraph.Graph) Analysis {
	flags := analysis.CycleFlags(g)
	depths := analysis.Depths(g)
	cycles := analysis.FindCycles(g)
	if cycles == nil {
		cycles = [][]int{}
	}

	a := Analysis{
		Tasks:         make([]TaskReport, 0, g.Len()),
		Cycles:        cycles,
		MaxDepth:      analysis.MaxDepth(depths),
		AffectedTasks: []int{},
	}
	for _, info := range analysis.InfoAll(g) {
		t, _ := g.Task(info.ID)
		a.Tasks = append(a.Tasks, TaskReport{
			ID:        info.ID,
			Title:     t.Title,
			Depth:     depths[info.ID],
			InCycle:   flags[info.ID],
			BlockedBy: info.BlockedBy,
			Blocks:    info.Blocks,
			Dangling:  g.Dangling(info.ID),
		})
		if flags[info.ID] {
			a.AffectedTasks = append(a.AffectedTasks, info.ID)
		}
	}
	a.HasCycles = len(a.AffectedTasks) > 0
	return a
}

// Task returns the report for id.
func (a Analysis) Task(id int) (TaskReport, bool) {
	for _, t := range a.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return TaskReport{}, false
}

// CycleFlags returns the in-cycle flag per task.
func (a Analysis) CycleFlags() map[int]bool {
	m := make(map[int]bool, len(a.Tasks))
	for _, t := range a.Tasks {
		m[t.ID] = t.InCycle
	}
	return m
}

// Depths returns the depth per task.
func (a Analysis) Depths() map[int]int {
	m := make(map[int]int, len(a.Tasks))
	for _, t := range a.Tasks {
		m[t.ID] = t.Depth
	}
	return m
}

// CycleReport returns the cycle summary.
func (a Analysis) CycleReport() CycleReport {
	return CycleReport{
		HasCycles:     a.HasCycles,
		CycleCount:    len(a.Cycles),
		Cycles:        a.Cycles,
		AffectedTasks: a.AffectedTasks,
	}
}

// =============================================================================
// Analysis Serialization API
// =============================================================================

// MarshalAnalysis encodes a as indented JSON.
func MarshalAnalysis(a Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteAnalysis(a, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalAnalysis decodes an analysis from JSON.
func UnmarshalAnalysis(data []byte) (Analysis, error) {
	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return a, nil
}

// WriteAnalysis writes a as indented JSON to w.
func WriteAnalysis(a Analysis, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteAnalysisFile writes a to a JSON file.
func WriteAnalysisFile(a Analysis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteAnalysis(a, f)
}
