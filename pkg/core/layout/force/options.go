package force

// Default simulation parameters.
const (
	DefaultWidth      = 900.0
	DefaultHeight     = 450.0
	DefaultPadding    = 50.0
	DefaultNodeRadius = 40.0
	DefaultIterations = 50
	DefaultRepulsion  = 500.0
	DefaultSpring     = 100.0
	DefaultDamping    = 0.5
)

// NoPadding requests a canvas without padding. A zero Padding selects
// DefaultPadding.
const NoPadding = -1.0

// Options configures the canvas and the simulation constants. Zero fields
// take their defaults. Any negative Padding means no padding. Damping must be
// positive for nodes to move, so zero or negative Damping also takes the
// default.
type Options struct {
	Width      float64 `json:"width" toml:"width"`
	Height     float64 `json:"height" toml:"height"`
	Padding    float64 `json:"padding" toml:"padding"`
	NodeRadius float64 `json:"node_radius" toml:"node_radius"`
	Iterations int     `json:"iterations" toml:"iterations"`
	Repulsion  float64 `json:"repulsion" toml:"repulsion"`
	Spring     float64 `json:"spring" toml:"spring"`
	Damping    float64 `json:"damping" toml:"damping"`
	Seed       uint64  `json:"seed,omitempty" toml:"seed"`
}

// DefaultOptions returns the reference canvas (900x450, padding 50, radius
// 40) and simulation constants (50 iterations, repulsion 500, spring 100,
// damping 0.5) with an unseeded generator.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Padding:    DefaultPadding,
		NodeRadius: DefaultNodeRadius,
		Iterations: DefaultIterations,
		Repulsion:  DefaultRepulsion,
		Spring:     DefaultSpring,
		Damping:    DefaultDamping,
	}
}

// WithDefaults returns a copy of o with zero or negative fields replaced by
// their defaults. A negative Padding is kept so repeated calls preserve
// NoPadding. Seed is left untouched.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = d.NodeRadius
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.Repulsion <= 0 {
		o.Repulsion = d.Repulsion
	}
	if o.Spring <= 0 {
		o.Spring = d.Spring
	}
	if o.Damping <= 0 {
		o.Damping = d.Damping
	}
	return o
}

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside r, bounds included.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Center returns the midpoint of r.
func (r Rect) Center() Position {
	return Position{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Bounds returns the rectangle node centers are kept in: the canvas inset
// by Padding plus NodeRadius on every side. Negative Padding counts as zero. If the canvas is too small for
// the inset on an axis, that axis collapses to the canvas center.
func (o Options) Bounds() Rect {
	inset := max(o.Padding, 0) + o.NodeRadius
	r := Rect{MinX: inset, MinY: inset, MaxX: o.Width - inset, MaxY: o.Height - inset}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = o.Width/2, o.Width/2
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = o.Height/2, o.Height/2
	}
	return r
}
