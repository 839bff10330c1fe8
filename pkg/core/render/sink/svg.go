package sink

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/taskmap/pkg/core/render"
)

// Palette.
const (
	colorNodeFill    = "#667eea"
	colorNodeStroke  = "#4f46e5"
	colorCycleFill   = "#fee2e2"
	colorCycleStroke = "#dc2626"
	colorCycleLabel  = "#fecaca"
	colorEdge        = "#cbd5e1"
	colorArrow       = "#94a3b8"
)

const nodeInteractionCSS = `
    .node circle.body { transition: r 0.2s ease, stroke-width 0.2s ease; cursor: pointer; }
    .node.active circle.body { stroke-width: 4; filter: drop-shadow(0 0 8px rgba(0, 0, 0, 0.3)); }
    .node.related circle.body { stroke-width: 3; }
    .node.dim, .edge.dim { opacity: 0.25; }
    .edge { transition: opacity 0.2s ease, stroke-width 0.2s ease; }
    .edge.related { opacity: 1; stroke-width: 3; }`

const nodeInteractionJS = `
    function related(el) {
      const ids = (el.dataset.related || '').split(' ').filter(Boolean);
      ids.push(el.dataset.id);
      return ids;
    }
    function highlight(el) {
      const ids = related(el);
      const r = Number(el.dataset.radius);
      document.querySelectorAll('.node').forEach(n => {
        const on = ids.includes(n.dataset.id);
        n.classList.toggle('active', n === el);
        n.classList.toggle('related', on && n !== el);
        n.classList.toggle('dim', !on);
      });
      el.querySelector('circle.body').setAttribute('r', r + 8);
      document.querySelectorAll('.edge').forEach(e => {
        const on = ids.includes(e.dataset.from) && ids.includes(e.dataset.to);
        e.classList.toggle('related', on);
        e.classList.toggle('dim', !on);
      });
    }
    function clearHighlight(el) {
      el.querySelector('circle.body').setAttribute('r', el.dataset.radius);
      document.querySelectorAll('.node, .edge').forEach(n => n.classList.remove('active', 'related', 'dim'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el));
      el.addEventListener('mouseleave', () => clearHighlight(el));
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	interactive bool
	shadows     bool
	background  string
}

// WithTitle draws a heading in the top-left corner.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithoutInteraction omits the hover style and script.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// WithoutShadows omits the drop shadow under each node.
func WithoutShadows() SVGOption { return func(r *svgRenderer) { r.shadows = false } }

// WithBackground sets the canvas fill. An empty string leaves it transparent.
func WithBackground(fill string) SVGOption { return func(r *svgRenderer) { r.background = fill } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{interactive: true, shadows: true, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG returns the scene as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSVG writes the scene as an SVG document to w.
func WriteSVG(w io.Writer, s render.Scene, opts ...SVGOption) error {
	r := newSVGRenderer(opts...)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := px(s.Width), px(s.Height)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	renderDefs(canvas)
	if r.background != "" {
		canvas.Rect(0, 0, width, height, "fill:"+r.background)
	}
	if r.title != "" {
		canvas.Text(16, 28, r.title, "fill:#1f2937;font-size:16px;font-family:system-ui,sans-serif;font-weight:600")
	}

	for _, e := range s.Edges {
		renderEdge(canvas, e)
	}
	for _, n := range s.Nodes {
		renderNode(canvas, n, s.Radius, r.shadows)
	}
	if r.interactive {
		fmt.Fprintf(canvas.Writer, "<style>%s\n</style>\n", nodeInteractionCSS)
		fmt.Fprintf(canvas.Writer, "<script type=\"text/javascript\"><![CDATA[%s\n]]></script>\n", nodeInteractionJS)
	}
	canvas.End()
	return ew.err
}

func renderDefs(canvas *svg.SVG) {
	canvas.Def()
	canvas.Marker("arrowhead", 9, 3, 10, 10, `orient="auto"`)
	canvas.Polygon([]int{0, 10, 0}, []int{0, 3, 6}, "fill:"+colorArrow)
	canvas.MarkerEnd()
	canvas.Marker("arrowhead-cycle", 9, 3, 10, 10, `orient="auto"`)
	canvas.Polygon([]int{0, 10, 0}, []int{0, 3, 6}, "fill:"+colorCycleStroke)
	canvas.MarkerEnd()
	canvas.DefEnd()
}

func renderEdge(canvas *svg.SVG, e render.Edge) {
	stroke, marker := colorEdge, "arrowhead"
	if e.InCycle {
		stroke, marker = colorCycleStroke, "arrowhead-cycle"
	}
	canvas.Path(e.Path.D(),
		`class="edge"`,
		fmt.Sprintf(`data-from="%d"`, e.From),
		fmt.Sprintf(`data-to="%d"`, e.To),
		fmt.Sprintf(`marker-end="url(#%s)"`, marker),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:2;opacity:0.6", stroke))
}

func renderNode(canvas *svg.SVG, n render.Node, radius float64, shadow bool) {
	x, y, r := px(n.X), px(n.Y), px(radius)
	fill, stroke, width, labelFill, labelBg := colorNodeFill, colorNodeStroke, 2, "white", "rgba(255,255,255,0.2)"
	if n.InCycle {
		fill, stroke, width, labelFill, labelBg = colorCycleFill, colorCycleStroke, 3, colorCycleStroke, colorCycleLabel
	}

	canvas.Group(
		`class="node"`,
		fmt.Sprintf(`id="task-%d"`, n.ID),
		fmt.Sprintf(`data-id="%d"`, n.ID),
		fmt.Sprintf(`data-radius="%d"`, r),
		fmt.Sprintf(`data-related="%s"`, joinIDs(n.Related)))
	tooltip := n.Title
	if n.InCycle {
		tooltip += " (circular dependency)"
	}
	canvas.Title(tooltip)
	if shadow {
		canvas.Circle(x+2, y+2, r, "fill:rgba(0,0,0,0.1)")
	}
	canvas.Circle(x, y, r, `class="body"`, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", fill, stroke, width))
	canvas.Roundrect(x-r+5, y-12, max(2*r-10, 0), 24, 4, 4, "fill:"+labelBg)
	canvas.Text(x, y+4, n.Label,
		fmt.Sprintf("fill:%s;font-size:11px;font-weight:bold;font-family:system-ui,sans-serif;text-anchor:middle;pointer-events:none", labelFill))
	canvas.Gend()
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

func px(v float64) int { return int(math.Round(v)) }

// errWriter remembers the first write error so the svgo calls, which do
// not return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// SVG is a [render.Renderer] producing interactive SVG.
type SVG struct {
	Options []SVGOption
}

// Render implements [render.Renderer].
func (r SVG) Render(w io.Writer, s render.Scene) error { return WriteSVG(w, s, r.Options...) }
