package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/taskmap/pkg/core/render"
	"github.com/matzehuels/taskmap/pkg/core/render/sink"
	"github.com/matzehuels/taskmap/pkg/errors"
	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/observability"
)

// Render produces one artifact per requested format. Formats are rendered
// concurrently; the first failure cancels the rest.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	scene := l.Scene()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			data, err := renderFormat(egCtx, format, l, scene, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := eg.Wait()

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFromLayoutData renders a serialized layout, for example one written
// by an earlier `taskmap layout` run.
func (r *Runner) RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	if opts.Layout == (graph.Config{}) {
		opts.Layout = l.Config
	}
	return r.Render(ctx, l, opts)
}

func renderFormat(ctx context.Context, format string, l graph.Layout, s render.Scene, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return graph.MarshalLayout(l)
	}
	rd, err := rendererFor(ctx, format, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := rd.Render(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rendererFor picks the sink for a format. PDF and PNG convert the
// engine's SVG output.
func rendererFor(ctx context.Context, format string, opts Options) (render.Renderer, error) {
	switch format {
	case FormatSVG:
		return svgRenderer(ctx, opts, !opts.NoInteraction), nil
	case FormatDOT:
		return sink.DOT{Options: sink.DOTOptions{Pinned: opts.Engine == graph.EngineNative}}, nil
	case FormatPDF:
		return sink.PDF{Source: svgRenderer(ctx, opts, false)}, nil
	case FormatPNG:
		return sink.PNG{Source: svgRenderer(ctx, opts, false), Scale: opts.PNGScale}, nil
	default:
		return nil, ValidateFormat(format)
	}
}

func svgRenderer(ctx context.Context, opts Options, interactive bool) render.Renderer {
	if opts.Engine == graph.EngineGraphviz {
		return sink.Graphviz{Context: ctx}
	}
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if !interactive {
		svgOpts = append(svgOpts, sink.WithoutInteraction())
	}
	return sink.SVG{Options: svgOpts}
}
