package force

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
)

// Position is a node center in canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Compute runs the simulation for g and returns the final position of every
// task, keyed by task ID. Options are completed with [Options.WithDefaults].
//
// An empty graph returns an empty map without iterating. The only error is
// the context's, checked every cancelCheckRows rows of the repulsion pass.
func Compute(ctx context.Context, g *taskgraph.Graph, opts Options) (map[int]Position, error) {
	n := g.Len()
	if n == 0 {
		return map[int]Position{}, nil
	}
	opts = opts.WithDefaults()
	bounds := opts.Bounds()

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	pos := make([]Position, n)
	for i := range pos {
		pos[i] = Position{
			X: bounds.MinX + rng.Float64()*(bounds.MaxX-bounds.MinX),
			Y: bounds.MinY + rng.Float64()*(bounds.MaxY-bounds.MinY),
		}
	}

	sim := simulation{g: g, opts: opts, bounds: bounds, pos: pos, vel: make([]Position, n)}
	for range opts.Iterations {
		if err := sim.step(ctx); err != nil {
			return nil, err
		}
	}

	out := make(map[int]Position, n)
	for i, p := range sim.pos {
		out[g.IDAt(i)] = p
	}
	return out, nil
}

type simulation struct {
	g      *taskgraph.Graph
	opts   Options
	bounds Rect
	pos    []Position
	vel    []Position
}

// cancelCheckRows is how many rows of the repulsion pass run between
// context checks.
const cancelCheckRows = 256

func (s *simulation) step(ctx context.Context) error {
	clear(s.vel)
	if err := s.repel(ctx); err != nil {
		return err
	}
	s.attract()
	s.integrate()
	return nil
}

func (s *simulation) repel(ctx context.Context) error {
	for i := range s.pos {
		if i%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j := i + 1; j < len(s.pos); j++ {
			dx := s.pos[j].X - s.pos[i].X
			dy := s.pos[j].Y - s.pos[i].Y
			dist := max(math.Hypot(dx, dy), 1)
			f := s.opts.Repulsion / (dist * dist)
			fx, fy := dx/dist*f, dy/dist*f
			s.vel[i].X -= fx
			s.vel[i].Y -= fy
			s.vel[j].X += fx
			s.vel[j].Y += fy
		}
	}
	return nil
}

// attract pulls each dependent toward its prerequisites.
func (s *simulation) attract() {
	for i := range s.pos {
		for _, j := range s.g.DependencyIndices(i) {
			dx := s.pos[j].X - s.pos[i].X
			dy := s.pos[j].Y - s.pos[i].Y
			dist := max(math.Hypot(dx, dy), 1)
			f := dist * dist / s.opts.Spring
			fx, fy := dx/dist*f, dy/dist*f
			s.vel[i].X += fx
			s.vel[i].Y += fy
			s.vel[j].X -= fx
			s.vel[j].Y -= fy
		}
	}
}

func (s *simulation) integrate() {
	center := s.bounds.Center()
	for i := range s.pos {
		p := &s.pos[i]
		p.X += s.vel[i].X * s.opts.Damping
		p.Y += s.vel[i].Y * s.opts.Damping
		p.X = clampFinite(p.X, s.bounds.MinX, s.bounds.MaxX, center.X)
		p.Y = clampFinite(p.Y, s.bounds.MinY, s.bounds.MaxY, center.Y)
	}
}

func clampFinite(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return max(lo, min(hi, v))
}
