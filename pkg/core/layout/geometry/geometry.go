// Package geometry computes the curved, directed paths drawn between
// positioned tasks.
//
// An edge runs from the prerequisite to the dependent. Both ends are pulled
// in by the node radius so the stroke starts and stops at the circle
// boundaries, and the quadratic control point is offset perpendicular to
// the edge so that opposing edges between the same pair do not overlap.
package geometry

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
)

// DefaultCurvature is the perpendicular control point offset as a fraction
// of the edge's own delta.
const DefaultCurvature = 0.1

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// FromPosition converts a layout position to a point.
func FromPosition(p force.Position) Point { return Point{X: p.X, Y: p.Y} }

// Path is a quadratic Bézier segment.
type Path struct {
	StartX   float64 `json:"start_x"`
	StartY   float64 `json:"start_y"`
	ControlX float64 `json:"control_x"`
	ControlY float64 `json:"control_y"`
	EndX     float64 `json:"end_x"`
	EndY     float64 `json:"end_y"`
}

// D returns the path as SVG path data ("M sx sy Q cx cy ex ey").
func (p Path) D() string {
	return fmt.Sprintf("M %s %s Q %s %s %s %s",
		num(p.StartX), num(p.StartY),
		num(p.ControlX), num(p.ControlY),
		num(p.EndX), num(p.EndY))
}

// Start returns the first point of the path.
func (p Path) Start() Point { return Point{p.StartX, p.StartY} }

// End returns the last point of the path, where the arrowhead is drawn.
func (p Path) End() Point { return Point{p.EndX, p.EndY} }

// Control returns the quadratic control point.
func (p Path) Control() Point { return Point{p.ControlX, p.ControlY} }

// Arrow computes the path from one node center to another. The second
// return is false when either point is not finite or the points coincide;
// no path should be drawn in that case.
//
// When the nodes are closer than twice the radius the shortened ends cross
// over; the path is still returned.
func Arrow(from, to Point, radius, curvature float64) (Path, bool) {
	if !finite(from) || !finite(to) {
		return Path{}, false
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return Path{}, false
	}
	ux, uy := dx/dist, dy/dist

	p := Path{
		StartX: from.X + ux*radius,
		StartY: from.Y + uy*radius,
		EndX:   to.X - ux*radius,
		EndY:   to.Y - uy*radius,
	}
	p.ControlX = (p.StartX+p.EndX)/2 + dy*curvature
	p.ControlY = (p.StartY+p.EndY)/2 - dx*curvature
	return p, true
}

// EdgePath is the drawable geometry of one resolved dependency.
type EdgePath struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Path Path `json:"path"`
}

// Edges returns a path for every resolved edge of g whose endpoints both
// have a position and yield a drawable arrow. Edges are in [taskgraph.Graph.Edges]
// order. Dangling dependencies never appear since they are not edges.
func Edges(g *taskgraph.Graph, positions map[int]force.Position, radius, curvature float64) []EdgePath {
	var out []EdgePath
	for _, e := range g.Edges() {
		from, ok := positions[e.From]
		if !ok {
			continue
		}
		to, ok := positions[e.To]
		if !ok {
			continue
		}
		p, ok := Arrow(FromPosition(from), FromPosition(to), radius, curvature)
		if !ok {
			continue
		}
		out = append(out, EdgePath{From: e.From, To: e.To, Path: p})
	}
	return out
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
