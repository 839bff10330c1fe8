package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/pkg/graph"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute a force-directed layout and write it as JSON",
		Long: `Layout runs the force simulation over a task list and writes the resulting
node positions, edge paths, and canvas configuration as JSON.

The layout file can be rendered later with 'taskmap render --from-layout'.
Use --seed for a reproducible layout.`,
		Example: `  taskmap layout tasks.json -o layout.json
  taskmap layout tasks.yaml --seed 42 --iterations 200 --width 1200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tasks, err := c.loadTasks(ctx, args)
			if err != nil {
				return err
			}

			opts := c.options(cmd, &flags)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			c.Logger.Debug("layout options", "width", opts.Layout.Width, "height", opts.Layout.Height,
				"iterations", opts.Layout.Iterations, "seed", opts.Layout.Seed)

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, a, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, opts)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			l, err := runner.ComputeLayout(ctx, g, a, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Laid out %d tasks", len(l.Nodes)))

			if output == "" {
				output = defaultOutput(args, "layout.json")
			}
			if err := graph.WriteLayoutFile(l, output); err != nil {
				return err
			}

			printSuccess("Layout computed")
			printFile(output)
			printStats(g.Len(), g.EdgeCount(), len(a.Cycles), hit)
			printNewline()
			printNextStep("Render it", "taskmap render --from-layout "+output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

// defaultOutput names an output file after the input file, or "tasks" when
// reading from stdin or a configured source.
func defaultOutput(args []string, suffix string) string {
	base := "tasks"
	if len(args) > 0 && args[0] != "-" {
		base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	return base + "." + suffix
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
