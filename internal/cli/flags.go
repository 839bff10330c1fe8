package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/pipeline"
)

// layoutFlags holds the canvas and simulation flags shared by layout,
// render, and explore.
type layoutFlags struct {
	width      float64
	height     float64
	padding    float64
	radius     float64
	iterations int
	seed       uint64
	curvature  float64
	noCache    bool
	refresh    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", 0, "canvas width (default 900)")
	fs.Float64Var(&f.height, "height", 0, "canvas height (default 450)")
	fs.Float64Var(&f.padding, "padding", 0, "canvas padding (default 50, 0 for none)")
	fs.Float64Var(&f.radius, "radius", 0, "node radius (default 40)")
	fs.IntVar(&f.iterations, "iterations", 0, "simulation iterations (default 50)")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for initial positions (0 = random)")
	fs.Float64Var(&f.curvature, "curvature", 0, "edge curvature as a fraction of edge length (default 0.1)")
	f.registerCache(cmd)
}

func (f *layoutFlags) registerCache(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the analysis cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute the analysis even when cached")
}

// options builds pipeline options from the config file and then applies
// every flag the user set explicitly.
func (c *CLI) options(cmd *cobra.Command, f *layoutFlags) pipeline.Options {
	opts := pipeline.Options{
		Layout:  c.Config.Layout,
		Formats: append([]string(nil), c.Config.Render.Formats...),
		Engine:  c.Config.Render.Engine,
		Title:   c.Config.Render.Title,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Layout.Width = f.width
	}
	if changed("height") {
		opts.Layout.Height = f.height
	}
	if changed("padding") {
		opts.Layout.Padding = f.padding
		if f.padding == 0 {
			opts.Layout.Padding = force.NoPadding
		}
	}
	if changed("radius") {
		opts.Layout.NodeRadius = f.radius
	}
	if changed("iterations") {
		opts.Layout.Iterations = f.iterations
	}
	if changed("seed") {
		opts.Layout.Seed = f.seed
	}
	if changed("curvature") {
		opts.Layout.Curvature = f.curvature
	}
	return opts
}
