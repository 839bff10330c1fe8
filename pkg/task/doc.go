// Package task defines the task record consumed by the analysis engine and
// the file formats it is exchanged in.
//
// A [Task] is owned by whatever fetched it (a file, the remote task API, a
// database). The engine treats a []Task as an immutable snapshot for the
// duration of one call and never writes back to it.
//
// # File Formats
//
// Task lists can be read from JSON, TOML, or YAML. The format is chosen from
// the file extension by [ReadFile], or explicitly with [Read]:
//
//	tasks, err := task.ReadFile("tasks.toml")
//
// JSON accepts either a bare array or an object with a "tasks" key, which is
// the shape the remote task API and the export endpoint produce:
//
//	[{"id": 1, "title": "Design", "dependencies": []},
//	 {"id": 2, "title": "Build",  "dependencies": [1]}]
//
// TOML and YAML use a top-level "tasks" list:
//
//	[[tasks]]
//	id = 1
//	title = "Design"
//
//	[[tasks]]
//	id = 2
//	title = "Build"
//	dependencies = [1]
package task
