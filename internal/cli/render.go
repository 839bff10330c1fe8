package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/pipeline"
	"github.com/matzehuels/taskmap/pkg/task"
)

// renderOpts holds the render-only flags.
type renderOpts struct {
	output        string
	formats       string
	engine        string
	title         string
	noInteraction bool
	pngScale      float64
	fromLayout    string
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ro    renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a task graph to SVG, DOT, JSON, PDF, or PNG",
		Long: `Render analyzes a task list, lays it out, and writes one file per requested
format. Tasks in a circular dependency are drawn in red.

The native engine draws the force layout with interactive hover highlighting.
The graphviz engine hands the graph to Graphviz's layered layout instead.
PDF and PNG are converted from SVG with rsvg-convert.`,
		Example: `  taskmap render tasks.json
  taskmap render tasks.json -f svg,dot,png -o out/graph
  taskmap render tasks.yaml --engine graphviz --title "Sprint 12"
  taskmap render --from-layout tasks.layout.json -f pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = pipeline.ParseFormats(ro.formats)
			}
			if cmd.Flags().Changed("engine") {
				opts.Engine = ro.engine
			}
			if cmd.Flags().Changed("title") {
				opts.Title = ro.title
			}
			opts.NoInteraction = ro.noInteraction
			opts.PNGScale = ro.pngScale

			if ro.fromLayout != "" {
				return c.renderFromLayout(cmd, &ro, opts)
			}
			return c.renderTasks(cmd, args, &flags, &ro, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), dot, json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&ro.engine, "engine", "", "rendering engine: native (default), graphviz")
	cmd.Flags().StringVar(&ro.title, "title", "", "heading drawn in the top-left corner")
	cmd.Flags().BoolVar(&ro.noInteraction, "no-interaction", false, "omit hover highlighting from SVG output")
	cmd.Flags().Float64Var(&ro.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG rasterization scale")
	cmd.Flags().StringVar(&ro.fromLayout, "from-layout", "", "render a layout JSON written by 'taskmap layout'")

	return cmd
}

func (c *CLI) renderTasks(cmd *cobra.Command, args []string, flags *layoutFlags, ro *renderOpts, opts pipeline.Options) error {
	ctx := cmd.Context()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	c.Logger.Debug("render options", "summary", opts.Summary())

	tasks, err := c.loadTasks(ctx, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading...")
	spinner.Start()
	out, err := renderStages(ctx, runner, tasks, opts, spinner)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(out.artifacts, opts.Formats, basePath(ro.output, defaultOutput(args, "graph.svg")))
	if err != nil {
		return err
	}

	printSuccess("Rendered %d tasks", out.tasks)
	for _, p := range paths {
		printFile(p)
	}
	printStats(out.tasks, out.edges, out.cycles, out.cached)
	if out.cycles > 0 {
		printNewline()
		printNextStep("Inspect the cycles", "taskmap analyze "+strings.Join(args, " "))
	}
	return nil
}

// rendered is what renderStages produced.
type rendered struct {
	artifacts            map[string][]byte
	tasks, edges, cycles int
	cached               bool
}

// renderStages runs analyze, layout, and render one at a time, announcing
// each on status.
func renderStages(ctx context.Context, runner *pipeline.Runner, tasks []task.Task, opts pipeline.Options, status interface{ SetMessage(string) }) (rendered, error) {
	status.SetMessage(fmt.Sprintf("Analyzing %d tasks...", len(tasks)))
	g, a, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, opts)
	if err != nil {
		return rendered{}, fmt.Errorf("analyze: %w", err)
	}

	status.SetMessage("Computing layout...")
	l, err := runner.ComputeLayout(ctx, g, a, opts)
	if err != nil {
		return rendered{}, fmt.Errorf("layout: %w", err)
	}

	status.SetMessage("Rendering " + strings.Join(opts.Formats, ", ") + "...")
	artifacts, err := runner.Render(ctx, l, opts)
	if err != nil {
		return rendered{}, fmt.Errorf("render: %w", err)
	}
	return rendered{
		artifacts: artifacts,
		tasks:     g.Len(),
		edges:     g.EdgeCount(),
		cycles:    len(a.Cycles),
		cached:    hit,
	}, nil
}

func (c *CLI) renderFromLayout(cmd *cobra.Command, ro *renderOpts, opts pipeline.Options) error {
	ctx := cmd.Context()

	// The canvas comes from the layout file.
	opts.Layout = graph.Config{}

	data, err := os.ReadFile(ro.fromLayout)
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	artifacts, err := runner.RenderFromLayoutData(ctx, data, opts)
	if err != nil {
		return err
	}

	base := ro.output
	if base == "" {
		base = strings.TrimSuffix(strings.TrimSuffix(ro.fromLayout, filepath.Ext(ro.fromLayout)), ".layout") + ".graph"
	}
	paths, err := writeArtifacts(artifacts, opts.Formats, basePath(base, ""))
	if err != nil {
		return err
	}

	printSuccess("Rendered layout")
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// basePath strips a known format extension from output. An empty output
// falls back to fallback with its extension stripped.
func basePath(output, fallback string) string {
	if output == "" {
		output = fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each format to base.<format> in the order requested
// and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + f
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
