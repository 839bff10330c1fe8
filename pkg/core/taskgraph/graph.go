package taskgraph

import (
	"slices"

	"github.com/matzehuels/taskmap/pkg/task"
)

// Edge is a resolved dependency, directed from the prerequisite (From) to
// the task that depends on it (To).
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is an indexed, read-only view of a task list.
//
// The zero value is an empty graph. Use [New] to build one from tasks.
type Graph struct {
	tasks    []task.Task
	index    map[int]int
	deps     [][]int // index -> prerequisite indices
	rdeps    [][]int // index -> dependent indices
	dangling [][]int // index -> unresolved dependency IDs
}

// New builds a graph from tasks. Tasks are indexed in input order; a task
// whose ID was already seen is ignored. The input slice is not retained.
func New(tasks []task.Task) *Graph {
	g := &Graph{index: make(map[int]int, len(tasks))}
	for _, t := range tasks {
		if _, dup := g.index[t.ID]; dup {
			continue
		}
		g.index[t.ID] = len(g.tasks)
		g.tasks = append(g.tasks, t.Clone())
	}

	n := len(g.tasks)
	g.deps = make([][]int, n)
	g.rdeps = make([][]int, n)
	g.dangling = make([][]int, n)
	for i, t := range g.tasks {
		for _, dep := range t.Dependencies {
			j, ok := g.index[dep]
			if !ok {
				if !slices.Contains(g.dangling[i], dep) {
					g.dangling[i] = append(g.dangling[i], dep)
				}
				continue
			}
			if slices.Contains(g.deps[i], j) {
				continue
			}
			g.deps[i] = append(g.deps[i], j)
			g.rdeps[j] = append(g.rdeps[j], i)
		}
	}
	return g
}

// Len returns the number of distinct tasks.
func (g *Graph) Len() int { return len(g.tasks) }

// IDs returns task IDs in input order.
func (g *Graph) IDs() []int {
	ids := make([]int, len(g.tasks))
	for i, t := range g.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Tasks returns a copy of the indexed tasks in input order.
func (g *Graph) Tasks() []task.Task { return task.Clone(g.tasks) }

// Task returns the task with the given ID.
func (g *Graph) Task(id int) (task.Task, bool) {
	i, ok := g.index[id]
	if !ok {
		return task.Task{}, false
	}
	return g.tasks[i].Clone(), true
}

// Has reports whether id is part of the working set.
func (g *Graph) Has(id int) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the dense index assigned to id.
func (g *Graph) Index(id int) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// IDAt returns the task ID at dense index i. It panics if i is out of range.
func (g *Graph) IDAt(i int) int { return g.tasks[i].ID }

// Dependencies returns the resolved prerequisites of id in declaration
// order, without duplicates. Unknown IDs yield nil.
func (g *Graph) Dependencies(id int) []int {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.idsOf(g.deps[i])
}

// Dependents returns the tasks that list id as a prerequisite, in input
// order.
func (g *Graph) Dependents(id int) []int {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.idsOf(g.rdeps[i])
}

// Dangling returns the dependency IDs of id that do not resolve to a task.
func (g *Graph) Dangling(id int) []int {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return slices.Clone(g.dangling[i])
}

// DependencyIndices returns the prerequisite indices of the task at dense
// index i. The returned slice must not be modified.
func (g *Graph) DependencyIndices(i int) []int { return g.deps[i] }

// DependentIndices returns the dependent indices of the task at dense index
// i. The returned slice must not be modified.
func (g *Graph) DependentIndices(i int) []int { return g.rdeps[i] }

// Edges returns every resolved dependency as a prerequisite -> dependent
// edge, ordered by dependent then declaration order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for i, deps := range g.deps {
		for _, j := range deps {
			edges = append(edges, Edge{From: g.tasks[j].ID, To: g.tasks[i].ID})
		}
	}
	return edges
}

// EdgeCount returns the number of resolved dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.deps {
		n += len(deps)
	}
	return n
}

func (g *Graph) idsOf(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	ids := make([]int, len(indices))
	for k, j := range indices {
		ids[k] = g.tasks[j].ID
	}
	return ids
}
