package analysis

import (
	"slices"

	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
)

// tarjan holds the per-pass state of Tarjan's algorithm over dense indices.
type tarjan struct {
	g       *taskgraph.Graph
	next    int
	index   []int // -1 until visited
	lowlink []int
	onStack []bool
	stack   []int
	sccs    [][]int
}

func newTarjan(g *taskgraph.Graph) *tarjan {
	n := g.Len()
	t := &tarjan{
		g:       g,
		index:   make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := range n {
		if t.index[i] < 0 {
			t.connect(i)
		}
	}
	return t
}

func (t *tarjan) connect(v int) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.DependencyIndices(v) {
		if t.index[w] < 0 {
			t.connect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var scc []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	t.sccs = append(t.sccs, scc)
}

// cyclic reports whether an SCC contains a cycle: more than one member, or
// a single member that depends on itself.
func (t *tarjan) cyclic(scc []int) bool {
	if len(scc) > 1 {
		return true
	}
	return slices.Contains(t.g.DependencyIndices(scc[0]), scc[0])
}

// CycleFlags labels every task with whether it lies on a dependency cycle.
// The result has an entry for every task in the graph.
func CycleFlags(g *taskgraph.Graph) map[int]bool {
	flags := make(map[int]bool, g.Len())
	for _, id := range g.IDs() {
		flags[id] = false
	}
	t := newTarjan(g)
	for _, scc := range t.sccs {
		if !t.cyclic(scc) {
			continue
		}
		for _, i := range scc {
			flags[g.IDAt(i)] = true
		}
	}
	return flags
}

// StronglyConnected returns the cyclic strongly connected components of the
// graph. Members of each component are sorted by input order, and components
// are ordered by their first member.
func StronglyConnected(g *taskgraph.Graph) [][]int {
	t := newTarjan(g)
	var out [][]int
	for _, scc := range t.sccs {
		if !t.cyclic(scc) {
			continue
		}
		slices.Sort(scc)
		out = append(out, scc)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })

	ids := make([][]int, len(out))
	for k, scc := range out {
		ids[k] = make([]int, len(scc))
		for m, i := range scc {
			ids[k][m] = g.IDAt(i)
		}
	}
	return ids
}
