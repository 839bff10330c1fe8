package render

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/layout/geometry"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/task"
)

func TestNewScene(t *testing.T) {
	g := taskgraph.New([]task.Task{
		{ID: 1, Title: "A very long task title indeed"},
		{ID: 2, Title: "B", Dependencies: []int{1, 3}},
		{ID: 3, Title: "C", Dependencies: []int{2}},
		{ID: 4, Title: "unplaced"},
	})
	pos := map[int]force.Position{
		1: {X: 100, Y: 100},
		2: {X: 300, Y: 100},
		3: {X: 300, Y: 300},
	}
	edges := geometry.Edges(g, pos, 40, geometry.DefaultCurvature)
	s := NewScene(g, pos, edges, analysis.CycleFlags(g), analysis.Depths(g), Canvas{Width: 900, Height: 450, Radius: 40})

	if len(s.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(s.Nodes))
	}
	if s.Nodes[0].Label != "A very long ta..." {
		t.Errorf("Label = %q", s.Nodes[0].Label)
	}
	if s.CycleCount() != 2 {
		t.Errorf("CycleCount() = %d, want 2", s.CycleCount())
	}
	n, ok := s.Node(1)
	if !ok || !slices.Equal(n.Related, []int{2, 3}) {
		t.Errorf("Node(1).Related = %v, want [2 3]", n.Related)
	}
	if len(s.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(s.Edges))
	}
	for _, e := range s.Edges {
		want := e.From != 1
		if e.InCycle != want {
			t.Errorf("edge %d->%d InCycle = %v, want %v", e.From, e.To, e.InCycle, want)
		}
	}
	if _, ok := s.Node(4); ok {
		t.Error("task without a position should not be in the scene")
	}
}

func TestRendererFunc(t *testing.T) {
	want := errors.New("boom")
	var r Renderer = RendererFunc(func(w io.Writer, s Scene) error {
		_, _ = io.WriteString(w, "ok")
		return want
	})
	var buf bytes.Buffer
	if err := r.Render(&buf, Scene{}); !errors.Is(err, want) || buf.String() != "ok" {
		t.Errorf("Render() = %v, %q", err, buf.String())
	}
}
