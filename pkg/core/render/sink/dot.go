package sink

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/taskmap/pkg/core/render"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Pinned fixes every node at its scene position for neato -n.
	// When false, rank direction is left-to-right and Graphviz places nodes.
	Pinned bool
}

// ToDOT converts a scene to Graphviz DOT. Positions are in points with the
// y axis flipped, since Graphviz grows upward.
func ToDOT(s render.Scene, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tasks {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  inputscale=72;\n")
		buf.WriteString("  notranslate=true;\n")
		buf.WriteString("  splines=curved;\n")
		fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", num(s.Width), num(s.Height))
	} else {
		buf.WriteString("  rankdir=LR;\n")
		buf.WriteString("  ranksep=0.6;\n")
		buf.WriteString("  nodesep=0.3;\n")
	}
	diameter := 2 * s.Radius / 72
	if diameter <= 0 {
		diameter = 1
	}
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, fontsize=10, fontname=\"Helvetica-Bold\"];\n", num(diameter))
	fmt.Fprintf(&buf, "  edge [color=%q, arrowsize=0.7];\n", colorArrow)
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("tooltip=%q", n.Title),
		}
		if n.InCycle {
			attrs = append(attrs,
				fmt.Sprintf("fillcolor=%q", colorCycleFill),
				fmt.Sprintf("color=%q", colorCycleStroke),
				fmt.Sprintf("fontcolor=%q", colorCycleStroke),
				"penwidth=3")
		} else {
			attrs = append(attrs,
				fmt.Sprintf("fillcolor=%q", colorNodeFill),
				fmt.Sprintf("color=%q", colorNodeStroke),
				"fontcolor=\"white\"",
				"penwidth=2")
		}
		if opts.Pinned {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(n.X), num(s.Height-n.Y)))
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		if e.InCycle {
			fmt.Fprintf(&buf, "  %d -> %d [color=%q];\n", e.From, e.To, colorCycleStroke)
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// DOT is a [render.Renderer] producing Graphviz DOT text.
type DOT struct {
	Options DOTOptions
}

// Render implements [render.Renderer].
func (r DOT) Render(w io.Writer, s render.Scene) error {
	_, err := io.WriteString(w, ToDOT(s, r.Options))
	return err
}
