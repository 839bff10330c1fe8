// Package sink writes a [render.Scene] in concrete output formats.
//
// # SVG
//
// [RenderSVG] draws the scene with github.com/ajstarks/svgo: curved edges
// with arrowheads, circular nodes with truncated labels and full-title
// tooltips, and cycle members in red. The document embeds a small script
// that, while a node is hovered, enlarges it and highlights every task
// upstream or downstream of it together with the connecting edges.
//
//	svg, err := sink.RenderSVG(scene, sink.WithTitle("Sprint 12"))
//
// # DOT and Graphviz
//
// [ToDOT] emits Graphviz DOT. With [DOTOptions.Pinned] every node carries
// its computed position (pos="x,y!") for use with neato -n; otherwise the
// graph is left for Graphviz to lay out. [RenderGraphviz] lays out and
// renders a DOT document to SVG in-process with github.com/goccy/go-graphviz.
//
// # Renderers
//
// [SVG], [DOT], and [Graphviz] adapt the functions above to
// [render.Renderer] so callers can pick an output format at runtime.
package sink
