// Package pkg provides the core libraries for taskmap task-graph analysis
// and visualization.
//
// # Overview
//
// Taskmap takes a list of tasks, each naming the tasks it depends on, and
// answers three questions: which tasks sit in a circular dependency, how deep
// each task's chain of prerequisites goes, and how the graph looks when
// drawn. The pkg directory is organized into four main areas:
//
//  1. [core] - Domain logic (graph model, analysis, layout, rendering)
//  2. [pipeline] - Orchestration (analyze → layout → render)
//  3. [graph] - Serialization types for analyses and layouts
//  4. Infrastructure - [cache], [source], [config], [httputil], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML / TOML file, HTTP endpoint, or MongoDB
//	         ↓
//	    [source] package (load []task.Task)
//	         ↓
//	    [core/taskgraph] package (index tasks, resolve edges)
//	         ↓
//	    [core/analysis] package (cycles, depths, neighbourhoods)
//	         ↓
//	    [core/layout/force] + [core/layout/geometry] (positions, curved edges)
//	         ↓
//	    [core/render] + [core/render/sink] (SVG, DOT, PDF, PNG)
//
// # Quick Start
//
//	g := taskgraph.New(tasks)
//	flags := analysis.CycleFlags(g)
//	depths := analysis.Depths(g)
//
//	pos, err := force.Compute(ctx, g, force.Options{Seed: 42}.WithDefaults())
//	edges := geometry.Edges(g, pos, force.DefaultNodeRadius, geometry.DefaultCurvature)
//
// Or run everything through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, tasks, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//
// # Main Packages
//
// [core/taskgraph] - Immutable adjacency view of a task list. Dependencies
// on unknown tasks are kept as dangling references, never as edges.
//
// [core/analysis] - Cycle membership (Tarjan SCC), cycle paths, longest
// prerequisite depth, and the upstream/downstream highlight set.
//
// [core/layout/force] - Seeded force-directed simulation with bounded node
// positions.
//
// [core/layout/geometry] - Quadratic-curve edges trimmed to the node rims,
// with arrowhead angles.
//
// [cache] - Analysis cache with file, Redis, and no-op backends.
//
// [source] - Task sources: files, HTTP endpoints, and MongoDB collections.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core
// [core/taskgraph]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core/taskgraph
// [core/analysis]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core/analysis
// [core/layout/force]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core/layout/force
// [core/layout/geometry]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core/layout/geometry
// [core/render]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core/render
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/core/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/pipeline
// [graph]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/cache
// [source]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/source
// [config]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/config
// [httputil]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/taskmap/pkg/errors
package pkg
