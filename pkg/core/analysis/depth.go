package analysis

import "github.com/matzehuels/taskmap/pkg/core/taskgraph"

type depthFrame struct {
	node int
	next int // next prerequisite position to visit
	best int // deepest prerequisite contribution so far
}

// Depths returns the longest prerequisite chain length for every task.
//
// The traversal is an explicit stack over dense indices with an on-path
// array; a prerequisite already on the current path contributes 0. Results
// are memoized for the whole pass and roots are visited in input order, so
// repeated calls on the same graph return identical maps.
func Depths(g *taskgraph.Graph) map[int]int {
	n := g.Len()
	depth := make([]int, n)
	done := make([]bool, n)
	onPath := make([]bool, n)
	var stack []depthFrame

	for root := range n {
		if done[root] {
			continue
		}
		stack = append(stack, depthFrame{node: root})
		onPath[root] = true

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := g.DependencyIndices(f.node)

			if f.next < len(deps) {
				j := deps[f.next]
				f.next++
				switch {
				case onPath[j]:
					f.best = max(f.best, 1)
				case done[j]:
					f.best = max(f.best, 1+depth[j])
				default:
					onPath[j] = true
					stack = append(stack, depthFrame{node: j})
				}
				continue
			}

			depth[f.node] = f.best
			done[f.node] = true
			onPath[f.node] = false
			d := f.best
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				parent.best = max(parent.best, 1+d)
			}
		}
	}

	out := make(map[int]int, n)
	for i, d := range depth {
		out[g.IDAt(i)] = d
	}
	return out
}

// DepthOf returns the depth of a single task, or 0 for unknown IDs.
func DepthOf(g *taskgraph.Graph, id int) int {
	return Depths(g)[id]
}

// MaxDepth returns the largest value in depths, or 0 for an empty map.
func MaxDepth(depths map[int]int) int {
	m := 0
	for _, d := range depths {
		m = max(m, d)
	}
	return m
}
