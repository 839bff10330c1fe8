// Package analysis answers structural questions about a task graph: which
// tasks sit on a dependency cycle, how deep each task's prerequisite chain
// is, and which tasks block or are blocked by a given task.
//
// All functions take a [taskgraph.Graph] built for the current pass and
// return fresh values. Nothing is cached between calls and no function
// returns an error: cycles, dangling references, and empty graphs are
// reported as data.
//
// # Cycles
//
// A task is in a cycle when it can reach itself by following one or more
// dependency edges; a task depending on itself is a cycle of length one.
//
//   - [IsInCycle] answers the question for a single task with a DFS rooted
//     at that task.
//   - [CycleFlags] labels every task in one linear pass using Tarjan's
//     strongly connected components algorithm, and agrees with IsInCycle
//     on every task.
//   - [ReachesCycle] is the looser query "does any cycle lie downstream of
//     this task", which is what a recursion-stack DFS without a root check
//     reports.
//   - [FindCycles] returns concrete cycle paths for display.
//
// # Depth
//
// [Depths] computes the length of the longest prerequisite chain for every
// task. A task with no resolvable prerequisites has depth 0. When the
// traversal meets a prerequisite that is already on the current path, that
// prerequisite contributes 0, which keeps depths finite on cyclic graphs.
package analysis
