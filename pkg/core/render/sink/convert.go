package sink

import (
	"bytes"
	"io"

	"github.com/matzehuels/taskmap/pkg/core/render"
)

// PDF is a [render.Renderer] converting the output of Source (SVG by
// default) to PDF with rsvg-convert.
type PDF struct {
	Source render.Renderer
}

// Render implements [render.Renderer].
func (r PDF) Render(w io.Writer, s render.Scene) error {
	svgData, err := renderToBytes(r.Source, s)
	if err != nil {
		return err
	}
	data, err := render.ToPDF(svgData)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// PNG is a [render.Renderer] converting the output of Source (SVG by
// default) to PNG with rsvg-convert.
type PNG struct {
	Source render.Renderer
	Scale  float64
}

// Render implements [render.Renderer].
func (r PNG) Render(w io.Writer, s render.Scene) error {
	svgData, err := renderToBytes(r.Source, s)
	if err != nil {
		return err
	}
	data, err := render.ToPNG(svgData, r.Scale)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderToBytes(src render.Renderer, s render.Scene) ([]byte, error) {
	if src == nil {
		src = SVG{Options: []SVGOption{WithoutInteraction()}}
	}
	var buf bytes.Buffer
	if err := src.Render(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
