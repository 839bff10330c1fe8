package analysis

import (
	"slices"

	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
)

// Info summarizes the direct blocking relations of one task.
type Info struct {
	ID            int   `json:"id"`
	BlockedBy     []int `json:"blocked_by"`
	Blocks        []int `json:"blocks"`
	BlockedCount  int   `json:"blocked_count"`
	BlockingCount int   `json:"blocking_count"`
}

// InfoFor returns the direct prerequisites (BlockedBy) and dependents
// (Blocks) of id. The second return is false for unknown IDs.
func InfoFor(g *taskgraph.Graph, id int) (Info, bool) {
	if !g.Has(id) {
		return Info{}, false
	}
	by := orEmpty(g.Dependencies(id))
	blocks := orEmpty(g.Dependents(id))
	return Info{
		ID:            id,
		BlockedBy:     by,
		Blocks:        blocks,
		BlockedCount:  len(by),
		BlockingCount: len(blocks),
	}, true
}

// InfoAll returns [Info] for every task in input order.
func InfoAll(g *taskgraph.Graph) []Info {
	out := make([]Info, 0, g.Len())
	for _, id := range g.IDs() {
		info, _ := InfoFor(g, id)
		out = append(out, info)
	}
	return out
}

// Highlight is the set of tasks and edges related to a focused task, used
// to emphasize its neighbourhood when it is hovered or selected.
type Highlight struct {
	ID         int              `json:"id"`
	Direct     []int            `json:"direct_dependencies"`
	Dependents []int            `json:"direct_dependents"`
	Upstream   []int            `json:"upstream"`
	Downstream []int            `json:"downstream"`
	Edges      []taskgraph.Edge `json:"edges"`
	InCycle    bool             `json:"in_cycle"`
}

// Contains reports whether id is the focused task or any of its upstream or
// downstream tasks.
func (h Highlight) Contains(id int) bool {
	return id == h.ID || slices.Contains(h.Upstream, id) || slices.Contains(h.Downstream, id)
}

// HighlightFor computes the neighbourhood of id. Upstream holds every
// transitive prerequisite and Downstream every transitive dependent, both in
// breadth-first order and excluding id itself. Edges lists the resolved
// edges incident to id.
func HighlightFor(g *taskgraph.Graph, id int) (Highlight, bool) {
	i, ok := g.Index(id)
	if !ok {
		return Highlight{}, false
	}
	h := Highlight{
		ID:         id,
		Direct:     orEmpty(g.Dependencies(id)),
		Dependents: orEmpty(g.Dependents(id)),
		Upstream:   reach(g, i, g.DependencyIndices),
		Downstream: reach(g, i, g.DependentIndices),
		InCycle:    IsInCycle(g, id),
	}
	for _, e := range g.Edges() {
		if e.From == id || e.To == id {
			h.Edges = append(h.Edges, e)
		}
	}
	if h.Edges == nil {
		h.Edges = []taskgraph.Edge{}
	}
	return h, true
}

func reach(g *taskgraph.Graph, from int, next func(int) []int) []int {
	seen := make([]bool, g.Len())
	seen[from] = true
	queue := []int{from}
	out := []int{}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, j := range next(i) {
			if seen[j] {
				continue
			}
			seen[j] = true
			out = append(out, g.IDAt(j))
			queue = append(queue, j)
		}
	}
	return out
}

func orEmpty(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
