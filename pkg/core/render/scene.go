package render

import (
	"io"

	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/layout/geometry"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
)

// LabelLimit is the number of title runes shown inside a node before the
// label is truncated with "...".
const LabelLimit = 14

// Renderer writes a scene in one output format.
type Renderer interface {
	Render(w io.Writer, s Scene) error
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(w io.Writer, s Scene) error

// Render calls f(w, s).
func (f RendererFunc) Render(w io.Writer, s Scene) error { return f(w, s) }

// Canvas is the drawing area and node size of a scene.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Radius float64 `json:"node_radius"`
}

// Node is a positioned task.
type Node struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Depth   int     `json:"depth"`
	InCycle bool    `json:"in_cycle"`

	// Related holds every task upstream or downstream of this one; a hover
	// over the node emphasizes them.
	Related []int `json:"related,omitempty"`
}

// Edge is a drawable dependency from a prerequisite to a dependent.
type Edge struct {
	From int           `json:"from"`
	To   int           `json:"to"`
	Path geometry.Path `json:"path"`

	// InCycle is set when both endpoints are flagged as cycle members.
	InCycle bool `json:"in_cycle"`
}

// Scene is everything a renderer needs to draw a task graph.
type Scene struct {
	Canvas
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NewScene assembles a scene. Tasks without a position are left out, and
// nodes appear in graph input order.
func NewScene(
	g *taskgraph.Graph,
	positions map[int]force.Position,
	edges []geometry.EdgePath,
	flags map[int]bool,
	depths map[int]int,
	canvas Canvas,
) Scene {
	s := Scene{Canvas: canvas, Nodes: []Node{}, Edges: []Edge{}}
	for _, id := range g.IDs() {
		p, ok := positions[id]
		if !ok {
			continue
		}
		t, _ := g.Task(id)
		n := Node{
			ID:      id,
			Title:   t.Title,
			Label:   t.Label(LabelLimit),
			X:       p.X,
			Y:       p.Y,
			Depth:   depths[id],
			InCycle: flags[id],
		}
		if h, ok := analysis.HighlightFor(g, id); ok {
			n.Related = append(append(n.Related, h.Upstream...), h.Downstream...)
		}
		s.Nodes = append(s.Nodes, n)
	}
	for _, e := range edges {
		s.Edges = append(s.Edges, Edge{
			From:    e.From,
			To:      e.To,
			Path:    e.Path,
			InCycle: flags[e.From] && flags[e.To],
		})
	}
	return s
}

// Node returns the scene node with the given task ID.
func (s Scene) Node(id int) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// CycleCount returns the number of nodes flagged as cycle members.
func (s Scene) CycleCount() int {
	n := 0
	for _, node := range s.Nodes {
		if node.InCycle {
			n++
		}
	}
	return n
}
