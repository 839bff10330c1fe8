package analysis

import "github.com/matzehuels/taskmap/pkg/core/taskgraph"

const (
	white = iota
	gray
	black
)

// IsInCycle reports whether id can reach itself through one or more
// dependency edges. Unknown IDs are never in a cycle.
func IsInCycle(g *taskgraph.Graph, id int) bool {
	root, ok := g.Index(id)
	if !ok {
		return false
	}

	color := make([]uint8, g.Len())
	var dfs func(i int) bool
	dfs = func(i int) bool {
		color[i] = gray
		for _, j := range g.DependencyIndices(i) {
			if j == root {
				return true
			}
			if color[j] == white && dfs(j) {
				return true
			}
		}
		color[i] = black
		return false
	}
	return dfs(root)
}

// ReachesCycle reports whether a dependency cycle is reachable from id,
// including cycles that id itself is not part of.
func ReachesCycle(g *taskgraph.Graph, id int) bool {
	root, ok := g.Index(id)
	if !ok {
		return false
	}

	color := make([]uint8, g.Len())
	var dfs func(i int) bool
	dfs = func(i int) bool {
		color[i] = gray
		for _, j := range g.DependencyIndices(i) {
			switch color[j] {
			case white:
				if dfs(j) {
					return true
				}
			case gray:
				return true
			}
		}
		color[i] = black
		return false
	}
	return dfs(root)
}

// HasCycles reports whether the graph contains any dependency cycle.
func HasCycles(g *taskgraph.Graph) bool {
	for _, inCycle := range CycleFlags(g) {
		if inCycle {
			return true
		}
	}
	return false
}

// FindCycles returns one closed path per back-edge found by a depth-first
// sweep in input order. Each path starts at the task closing the cycle,
// follows dependency edges, and repeats its first ID at the end:
// [1 2 3 1] means 1 depends on 2, 2 on 3, and 3 on 1.
func FindCycles(g *taskgraph.Graph) [][]int {
	color := make([]uint8, g.Len())
	var (
		path   []int
		cycles [][]int
	)

	var dfs func(i int)
	dfs = func(i int) {
		color[i] = gray
		path = append(path, i)
		for _, j := range g.DependencyIndices(i) {
			switch color[j] {
			case white:
				dfs(j)
			case gray:
				cycles = append(cycles, closePath(g, path, j))
			}
		}
		path = path[:len(path)-1]
		color[i] = black
	}

	for i := range g.Len() {
		if color[i] == white {
			dfs(i)
		}
	}
	return cycles
}

func closePath(g *taskgraph.Graph, path []int, start int) []int {
	k := len(path) - 1
	for path[k] != start {
		k--
	}
	cycle := make([]int, 0, len(path)-k+1)
	for _, i := range path[k:] {
		cycle = append(cycle, g.IDAt(i))
	}
	return append(cycle, g.IDAt(start))
}
