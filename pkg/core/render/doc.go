// Package render is the boundary between the analysis engine and the
// output formats.
//
// # Scene
//
// A [Scene] is pure data: the canvas size, one [Node] per positioned task
// (with its label, depth, cycle flag, and hover neighbourhood), and one
// [Edge] per drawable dependency. It is assembled with [NewScene] from the
// results of the analysis, layout, and geometry packages:
//
//	g := taskgraph.New(tasks)
//	pos, _ := force.Compute(ctx, g, opts)
//	edges := geometry.Edges(g, pos, opts.NodeRadius, geometry.DefaultCurvature)
//	scene := render.NewScene(g, pos, edges, analysis.CycleFlags(g), analysis.Depths(g),
//	    render.Canvas{Width: opts.Width, Height: opts.Height, Radius: opts.NodeRadius})
//
// A [Renderer] turns a scene into bytes. Implementations live in the
// [sink] subpackage.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert rendered SVG with the external rsvg-convert
// tool (from librsvg).
//
// [sink]: github.com/matzehuels/taskmap/pkg/core/render/sink
package render
