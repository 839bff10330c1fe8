package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/graph"
)

// analyzeCommand creates the analyze command for reporting graph structure.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		asJSON  bool
		focusID int
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report cycles, depths, and blocking relations",
		Long: `Analyze reads a task list and reports, for every task, its dependency depth,
whether it is part of a circular dependency, and which tasks it blocks or is
blocked by.

The file may be JSON, YAML, or TOML. Pass - to read JSON from stdin. Without
a file argument the source from the config file is used.`,
		Example: `  taskmap analyze tasks.json
  taskmap analyze tasks.yaml --json
  taskmap analyze tasks.json --task 3
  cat tasks.json | taskmap analyze - -o analysis.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tasks, err := c.loadTasks(ctx, args)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options(cmd, &flags)
			g, a, hit, err := runner.AnalyzeWithCacheInfo(ctx, tasks, opts)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("task") {
				h, ok := analysis.HighlightFor(g, focusID)
				if !ok {
					return fmt.Errorf("task %d not found", focusID)
				}
				printFocus(a, h)
				return nil
			}

			switch {
			case asJSON:
				return graph.WriteAnalysis(a, os.Stdout)
			case output != "":
				if err := graph.WriteAnalysisFile(a, output); err != nil {
					return err
				}
				printSuccess("Analysis written")
				printFile(output)
				printStats(g.Len(), g.EdgeCount(), len(a.Cycles), hit)
				return nil
			}

			printAnalysis(a)
			printNewline()
			printStats(g.Len(), g.EdgeCount(), len(a.Cycles), hit)
			return nil
		},
	}

	flags.registerCache(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the analysis as JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.Flags().IntVar(&focusID, "task", 0, "show the dependency neighbourhood of one task")

	return cmd
}

// printAnalysis prints the per-task table followed by any cycles.
func printAnalysis(a graph.Analysis) {
	if len(a.Tasks) == 0 {
		printInfo("No tasks")
		return
	}

	rows := make([][]string, 0, len(a.Tasks))
	for _, r := range a.Tasks {
		cycle := ""
		if r.InCycle {
			cycle = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Title,
			strconv.Itoa(r.Depth),
			joinInts(r.BlockedBy),
			joinInts(r.Blocks),
			cycle,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "Depth", "Blocked by", "Blocks", "Cycle").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(a.Tasks) && a.Tasks[row].InCycle {
				return base.Foreground(colorRed)
			}
			if col == 2 {
				return base.Foreground(colorCyan)
			}
			return base
		})
	fmt.Println(t.Render())

	if !a.HasCycles {
		printSuccess("No circular dependencies")
		return
	}
	printWarning("%d circular dependencies", len(a.Cycles))
	for _, cycle := range a.Cycles {
		printDetail("%s", formatCycle(cycle))
	}
}

// printFocus prints the neighbourhood of a single task.
func printFocus(a graph.Analysis, h analysis.Highlight) {
	r, _ := a.Task(h.ID)
	title := StyleTitle.Render(fmt.Sprintf("#%d %s", r.ID, r.Title))
	if h.InCycle {
		title += " " + StyleCycle.Render("(circular dependency)")
	}
	fmt.Println(title)
	printKeyValue("Depth", strconv.Itoa(r.Depth))
	printKeyValue("Blocked by", orDash(joinInts(h.Direct)))
	printKeyValue("Blocks", orDash(joinInts(h.Dependents)))
	printKeyValue("Upstream", orDash(joinInts(h.Upstream)))
	printKeyValue("Downstream", orDash(joinInts(h.Downstream)))
	if len(r.Dangling) > 0 {
		printWarning("depends on unknown tasks: %s", joinInts(r.Dangling))
	}
}

func formatCycle(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.Itoa(id)
	}
	return strings.Join(parts, " "+iconArrow+" ")
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
