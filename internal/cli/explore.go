package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/graph"
)

// exploreCommand creates the explore command for browsing a graph in the terminal.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse tasks and their dependencies interactively",
		Long: `Explore opens a terminal view of the task list. Moving the cursor over a task
highlights everything it transitively depends on and everything that
transitively depends on it, the same neighbourhood the SVG highlights on hover.`,
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

			g, a, _, err := runner.AnalyzeWithCacheInfo(ctx, tasks, c.options(cmd, &flags))
			if err != nil {
				return err
			}
			if g.Len() == 0 {
				printInfo("No tasks")
				return nil
			}

			_, err = tea.NewProgram(NewExploreModel(g, a), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.registerCache(cmd)

	return cmd
}

// =============================================================================
// ExploreModel - Interactive task browser
// =============================================================================

var (
	exploreSelectedStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	exploreUpstreamStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	exploreDownstreamStyle = lipgloss.NewStyle().Foreground(colorGreen)
	exploreDimStyle        = lipgloss.NewStyle().Foreground(colorDim)
	explorePanelStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// defaultExploreRows is the list height used before the terminal size is known.
const defaultExploreRows = 15

// ExploreModel is the bubbletea model for the explore command.
type ExploreModel struct {
	Graph    *taskgraph.Graph
	Analysis graph.Analysis

	// IDs holds the visible tasks, in input order.
	IDs []int

	Cursor     int
	Offset     int
	Rows       int
	CyclesOnly bool

	highlight analysis.Highlight
}

// NewExploreModel creates a model positioned on the first task.
func NewExploreModel(g *taskgraph.Graph, a graph.Analysis) ExploreModel {
	m := ExploreModel{Graph: g, Analysis: a, Rows: defaultExploreRows}
	m.filter()
	return m
}

// Selected returns the ID under the cursor.
func (m ExploreModel) Selected() (int, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.IDs) {
		return 0, false
	}
	return m.IDs[m.Cursor], true
}

// Highlight returns the neighbourhood of the selected task.
func (m ExploreModel) Highlight() analysis.Highlight { return m.highlight }

func (m *ExploreModel) filter() {
	m.IDs = nil
	for _, r := range m.Analysis.Tasks {
		if m.CyclesOnly && !r.InCycle {
			continue
		}
		m.IDs = append(m.IDs, r.ID)
	}
	m.Cursor, m.Offset = 0, 0
	m.focus()
}

func (m *ExploreModel) focus() {
	m.highlight = analysis.Highlight{}
	if id, ok := m.Selected(); ok {
		m.highlight, _ = analysis.HighlightFor(m.Graph, id)
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Rows {
		m.Offset = m.Cursor - m.Rows + 1
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the header, footer, and detail panel.
		m.Rows = max(msg.Height-14, 3)
		m.focus()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.IDs)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.IDs)-1, 0)
		case "c":
			m.CyclesOnly = !m.CyclesOnly
			m.filter()
			return m, nil
		}
		m.focus()
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Task Explorer"))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("arrows: navigate  c: cycles only  q: quit"))
	b.WriteString("\n\n")

	if len(m.IDs) == 0 {
		b.WriteString(exploreDimStyle.Render("  no tasks in circular dependencies"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Rows, len(m.IDs))
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.row(i))
		b.WriteString("\n")
	}
	b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.IDs))))
	b.WriteString("\n")
	b.WriteString(m.detail())

	return b.String()
}

func (m ExploreModel) row(i int) string {
	id := m.IDs[i]
	r, _ := m.Analysis.Task(id)

	cursor := "  "
	if i == m.Cursor {
		cursor = "> "
	}
	mark := " "
	if r.InCycle {
		mark = StyleCycle.Render("*")
	}
	line := fmt.Sprintf("%s%s #%-4d %-40s d%d", cursor, mark, r.ID, truncate(r.Title, 40), r.Depth)

	h := m.highlight
	switch {
	case i == m.Cursor:
		return exploreSelectedStyle.Render(line)
	case slices.Contains(h.Upstream, id) && slices.Contains(h.Downstream, id):
		return StyleCycle.Render(line)
	case slices.Contains(h.Upstream, id):
		return exploreUpstreamStyle.Render(line)
	case slices.Contains(h.Downstream, id):
		return exploreDownstreamStyle.Render(line)
	}
	return exploreDimStyle.Render(line)
}

func (m ExploreModel) detail() string {
	id, ok := m.Selected()
	if !ok {
		return ""
	}
	r, _ := m.Analysis.Task(id)
	h := m.highlight

	var b strings.Builder
	title := fmt.Sprintf("#%d %s", r.ID, r.Title)
	if r.InCycle {
		title += "  " + StyleCycle.Render("circular dependency")
	}
	b.WriteString(exploreSelectedStyle.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "depth %s  blocked by %s  blocks %s\n",
		StyleNumber.Render(strconv.Itoa(r.Depth)),
		orDash(joinInts(h.Direct)),
		orDash(joinInts(h.Dependents)))
	b.WriteString(exploreUpstreamStyle.Render("upstream   " + orDash(joinInts(h.Upstream))))
	b.WriteString("\n")
	b.WriteString(exploreDownstreamStyle.Render("downstream " + orDash(joinInts(h.Downstream))))
	if len(r.Dangling) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("unknown dependencies " + joinInts(r.Dangling)))
	}
	return explorePanelStyle.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
