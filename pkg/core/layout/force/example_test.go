package force_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/task"
)

func ExampleCompute() {
	g := taskgraph.New([]task.Task{
		{ID: 1, Title: "Design"},
		{ID: 2, Title: "Build", Dependencies: []int{1}},
	})

	opts := force.DefaultOptions()
	opts.Seed = 7
	positions, err := force.Compute(context.Background(), g, opts)
	if err != nil {
		panic(err)
	}

	bounds := opts.Bounds()
	for _, id := range g.IDs() {
		fmt.Println(id, bounds.Contains(positions[id]))
	}
	// Output:
	// 1 true
	// 2 true
}
