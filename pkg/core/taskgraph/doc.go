// Package taskgraph builds an immutable adjacency view over a task list.
//
// A [Graph] is constructed once per analysis pass with [New] and answers
// lookups by task ID: the task record, its resolved prerequisites, and the
// tasks that depend on it. Internally every task is assigned a dense index
// (its position in the input, first occurrence wins) so that traversal code
// in the analysis and layout packages can use slices instead of maps.
//
// Dependencies referencing IDs that are not part of the working set are
// dropped from the adjacency lists but remain visible through
// [Graph.Dangling] for reporting. Repeated dependencies collapse to one edge.
//
// # Edge Direction
//
// A task "depends on" its prerequisites. [Graph.Edges] reports each relation
// in drawing order, from the prerequisite to the dependent:
//
//	tasks := []task.Task{
//	    {ID: 1, Title: "Design"},
//	    {ID: 2, Title: "Build", Dependencies: []int{1}},
//	}
//	g := taskgraph.New(tasks)
//	g.Edges() // [{From: 1, To: 2}]
//
// Graph has no mutation methods and is safe for concurrent reads.
package taskgraph
