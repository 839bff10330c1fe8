package analysis

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/task"
)

// build creates a graph where deps[id] lists the prerequisites of id.
// Tasks are created in the order given.
func build(order []int, deps map[int][]int) *taskgraph.Graph {
	tasks := make([]task.Task, len(order))
	for i, id := range order {
		tasks[i] = task.Task{ID: id, Dependencies: deps[id]}
	}
	return taskgraph.New(tasks)
}

func TestIsInCycle(t *testing.T) {
	// 1 -> 2 -> 3 -> 1 (each depends on the next); 4 standalone;
	// 5 depends on 1 but is outside the cycle.
	g := build([]int{1, 2, 3, 4, 5}, map[int][]int{
		1: {2},
		2: {3},
		3: {1},
		5: {1},
	})

	tests := []struct {
		id   int
		want bool
	}{
		{1, true},
		{2, true},
		{3, true},
		{4, false},
		{5, false},
		{404, false},
	}
	for _, tt := range tests {
		if got := IsInCycle(g, tt.id); got != tt.want {
			t.Errorf("IsInCycle(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestIsInCycle_SelfDependency(t *testing.T) {
	g := build([]int{1}, map[int][]int{1: {1}})
	if !IsInCycle(g, 1) {
		t.Error("IsInCycle(1) = false for a self-dependency")
	}
	if !CycleFlags(g)[1] {
		t.Error("CycleFlags()[1] = false for a self-dependency")
	}
}

func TestIsInCycle_DanglingDependency(t *testing.T) {
	g := build([]int{1, 2}, map[int][]int{1: {2, 99}, 2: {99}})
	if IsInCycle(g, 1) || IsInCycle(g, 2) {
		t.Error("dangling dependencies must not create cycles")
	}
}

func TestReachesCycle(t *testing.T) {
	g := build([]int{1, 2, 3, 4, 5}, map[int][]int{
		1: {2},
		2: {3},
		3: {1},
		5: {1},
	})
	if !ReachesCycle(g, 5) {
		t.Error("ReachesCycle(5) = false, want true (5 depends on a cycle)")
	}
	if IsInCycle(g, 5) {
		t.Error("IsInCycle(5) = true, want false")
	}
	if ReachesCycle(g, 4) {
		t.Error("ReachesCycle(4) = true, want false")
	}
}

func TestCycleFlags(t *testing.T) {
	g := build([]int{1, 2, 3, 4, 5, 6}, map[int][]int{
		1: {2},
		2: {1},
		3: {3},
		4: {1, 5},
		5: {},
		6: {4},
	})
	want := map[int]bool{1: true, 2: true, 3: true, 4: false, 5: false, 6: false}
	got := CycleFlags(g)
	for id, w := range want {
		if got[id] != w {
			t.Errorf("CycleFlags()[%d] = %v, want %v", id, got[id], w)
		}
	}
	if len(got) != len(want) {
		t.Errorf("CycleFlags() has %d entries, want %d", len(got), len(want))
	}
	if !HasCycles(g) {
		t.Error("HasCycles() = false, want true")
	}
}

func TestCycleFlags_AgreesWithIsInCycle(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7^0xdeadbeef))
	for trial := range 50 {
		n := 1 + r.IntN(12)
		order := make([]int, n)
		deps := make(map[int][]int)
		for i := range n {
			order[i] = i + 1
			for range r.IntN(3) {
				deps[i+1] = append(deps[i+1], 1+r.IntN(n+2)) // may dangle
			}
		}
		g := build(order, deps)
		flags := CycleFlags(g)
		for _, id := range order {
			if flags[id] != IsInCycle(g, id) {
				t.Fatalf("trial %d: CycleFlags()[%d] = %v, IsInCycle = %v (deps %v)",
					trial, id, flags[id], !flags[id], deps)
			}
		}
	}
}

func TestCycleFlags_Idempotent(t *testing.T) {
	g := build([]int{1, 2, 3}, map[int][]int{1: {2}, 2: {1, 3}})
	a, b := CycleFlags(g), CycleFlags(g)
	for id := range a {
		if a[id] != b[id] {
			t.Errorf("CycleFlags differs between calls for %d", id)
		}
	}
}

func TestStronglyConnected(t *testing.T) {
	g := build([]int{1, 2, 3, 4, 5}, map[int][]int{
		1: {2},
		2: {1},
		3: {4},
		4: {5},
		5: {3, 5},
	})
	got := StronglyConnected(g)
	want := [][]int{{1, 2}, {3, 4, 5}}
	if len(got) != len(want) {
		t.Fatalf("StronglyConnected() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		order []int
		deps  map[int][]int
		want  [][]int
	}{
		{
			name:  "acyclic",
			order: []int{1, 2, 3},
			deps:  map[int][]int{2: {1}, 3: {2}},
			want:  nil,
		},
		{
			name:  "triangle",
			order: []int{1, 2, 3},
			deps:  map[int][]int{1: {2}, 2: {3}, 3: {1}},
			want:  [][]int{{1, 2, 3, 1}},
		},
		{
			name:  "self",
			order: []int{9},
			deps:  map[int][]int{9: {9}},
			want:  [][]int{{9, 9}},
		},
		{
			name:  "two cycles",
			order: []int{1, 2, 3, 4},
			deps:  map[int][]int{1: {2}, 2: {1}, 3: {4}, 4: {3}},
			want:  [][]int{{1, 2, 1}, {3, 4, 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCycles(build(tt.order, tt.deps))
			if len(got) != len(tt.want) {
				t.Fatalf("FindCycles() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if !slices.Equal(got[i], tt.want[i]) {
					t.Errorf("cycle %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	g := taskgraph.New(nil)
	if len(CycleFlags(g)) != 0 || len(Depths(g)) != 0 || FindCycles(g) != nil {
		t.Error("empty graph should produce empty results")
	}
	if HasCycles(g) {
		t.Error("HasCycles() = true on empty graph")
	}
}
