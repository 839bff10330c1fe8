package analysis

import (
	"maps"
	"testing"
)

func TestDepths(t *testing.T) {
	tests := []struct {
		name  string
		order []int
		deps  map[int][]int
		want  map[int]int
	}{
		{
			name:  "no dependencies",
			order: []int{1},
			want:  map[int]int{1: 0},
		},
		{
			name:  "chain",
			order: []int{1, 2, 3}, // 1 depends on 2 depends on 3
			deps:  map[int][]int{1: {2}, 2: {3}},
			want:  map[int]int{1: 2, 2: 1, 3: 0},
		},
		{
			name:  "diamond",
			order: []int{1, 2, 3, 4},
			deps:  map[int][]int{1: {2, 3}, 2: {4}, 3: {4}},
			want:  map[int]int{1: 2, 2: 1, 3: 1, 4: 0},
		},
		{
			name:  "longest branch wins",
			order: []int{1, 2, 3, 4},
			deps:  map[int][]int{1: {4, 2}, 2: {3}, 3: {4}},
			want:  map[int]int{1: 3, 2: 2, 3: 1, 4: 0},
		},
		{
			name:  "dangling only",
			order: []int{1},
			deps:  map[int][]int{1: {42}},
			want:  map[int]int{1: 0},
		},
		{
			name:  "self dependency",
			order: []int{1},
			deps:  map[int][]int{1: {1}},
			want:  map[int]int{1: 1},
		},
		{
			name:  "two cycle",
			order: []int{1, 2},
			deps:  map[int][]int{1: {2}, 2: {1}},
			want:  map[int]int{1: 2, 2: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Depths(build(tt.order, tt.deps))
			if !maps.Equal(got, tt.want) {
				t.Errorf("Depths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDepths_CycleTerminates(t *testing.T) {
	// A long cycle with a tail, exercised through the explicit stack.
	const n = 5000
	order := make([]int, n)
	deps := make(map[int][]int, n)
	for i := range n {
		order[i] = i
		deps[i] = []int{(i + 1) % n}
	}
	g := build(order, deps)

	got := Depths(g)
	if len(got) != n {
		t.Fatalf("Depths() has %d entries, want %d", len(got), n)
	}
	for id, d := range got {
		if d < 0 || d > n {
			t.Fatalf("depth(%d) = %d, out of range", id, d)
		}
	}
	if got[0] != n {
		t.Errorf("depth(0) = %d, want %d", got[0], n)
	}
}

func TestDepths_Idempotent(t *testing.T) {
	g := build([]int{1, 2, 3, 4}, map[int][]int{1: {2}, 2: {3}, 3: {1, 4}})
	a, b := Depths(g), Depths(g)
	if !maps.Equal(a, b) {
		t.Errorf("Depths() not idempotent: %v vs %v", a, b)
	}
}

func TestDepthOf(t *testing.T) {
	g := build([]int{1, 2}, map[int][]int{2: {1}})
	if DepthOf(g, 2) != 1 || DepthOf(g, 1) != 0 || DepthOf(g, 9) != 0 {
		t.Errorf("DepthOf mismatch: %d %d %d", DepthOf(g, 2), DepthOf(g, 1), DepthOf(g, 9))
	}
	if MaxDepth(Depths(g)) != 1 {
		t.Errorf("MaxDepth() = %d, want 1", MaxDepth(Depths(g)))
	}
}
