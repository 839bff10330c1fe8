package geometry

import (
	"math"
	"testing"

	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/task"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestArrow_Horizontal(t *testing.T) {
	p, ok := Arrow(Point{0, 0}, Point{200, 0}, 40, DefaultCurvature)
	if !ok {
		t.Fatal("Arrow() = false for distinct points")
	}
	want := Path{StartX: 40, StartY: 0, ControlX: 100, ControlY: -20, EndX: 160, EndY: 0}
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"StartX", p.StartX, want.StartX},
		{"StartY", p.StartY, want.StartY},
		{"ControlX", p.ControlX, want.ControlX},
		{"ControlY", p.ControlY, want.ControlY},
		{"EndX", p.EndX, want.EndX},
		{"EndY", p.EndY, want.EndY},
	} {
		if !near(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if got := p.D(); got != "M 40 0 Q 100 -20 160 0" {
		t.Errorf("D() = %q", got)
	}
}

func TestArrow_ShortenedByRadius(t *testing.T) {
	from, to := Point{100, 100}, Point{400, 500}
	p, ok := Arrow(from, to, 40, 0.1)
	if !ok {
		t.Fatal("Arrow() = false")
	}
	if d := math.Hypot(p.StartX-from.X, p.StartY-from.Y); !near(d, 40) {
		t.Errorf("start is %v from source center, want 40", d)
	}
	if d := math.Hypot(p.EndX-to.X, p.EndY-to.Y); !near(d, 40) {
		t.Errorf("end is %v from target center, want 40", d)
	}
}

func TestArrow_Skip(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
	}{
		{"coincident", Point{5, 5}, Point{5, 5}},
		{"nan from", Point{math.NaN(), 0}, Point{1, 1}},
		{"nan to", Point{0, 0}, Point{1, math.NaN()}},
		{"inf", Point{math.Inf(1), 0}, Point{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Arrow(tt.from, tt.to, 40, 0.1); ok {
				t.Error("Arrow() = true, want skipped")
			}
		})
	}
}

func TestEdges(t *testing.T) {
	g := taskgraph.New([]task.Task{
		{ID: 1},
		{ID: 2, Dependencies: []int{1, 404}},
		{ID: 3, Dependencies: []int{2}},
		{ID: 4, Dependencies: []int{1}},
	})
	positions := map[int]force.Position{
		1: {X: 100, Y: 100},
		2: {X: 300, Y: 100},
		3: {X: 300, Y: 100}, // coincides with 2
		// 4 has no position
	}

	edges := Edges(g, positions, 40, DefaultCurvature)
	if len(edges) != 1 {
		t.Fatalf("Edges() = %+v, want one edge", edges)
	}
	if edges[0].From != 1 || edges[0].To != 2 {
		t.Errorf("edge = %d->%d, want 1->2", edges[0].From, edges[0].To)
	}
	if !near(edges[0].Path.StartX, 140) || !near(edges[0].Path.EndX, 260) {
		t.Errorf("path = %+v", edges[0].Path)
	}
}
