// Package graph defines the wire formats for analysis results and layouts.
//
// These are the shapes written by the CLI's JSON output, returned by the
// HTTP API, and stored in the analysis cache. They are plain structs with
// json and bson tags and hold no references to engine types beyond what is
// needed to convert to and from them.
//
// # Analysis
//
// [Analysis] reports one entry per task plus the cycle summary:
//
//	{
//	  "tasks": [
//	    {"id": 1, "title": "Design", "depth": 0, "in_cycle": false,
//	     "blocked_by": [], "blocks": [2]},
//	    {"id": 2, "title": "Build", "depth": 1, "in_cycle": false,
//	     "blocked_by": [1], "blocks": []}
//	  ],
//	  "cycles": [],
//	  "has_cycles": false
//	}
//
// Build one with [NewAnalysis]. [Analysis.CycleReport] extracts the
// summary served by the cycles endpoint.
//
// # Layout
//
// [Layout] carries the canvas configuration used to compute it, every
// positioned node, and every drawable edge with its curved path:
//
//	l := graph.FromScene(scene, cfg)
//	data, _ := graph.MarshalLayout(l)
//	back, _ := graph.UnmarshalLayout(data)
//	scene = back.Scene()
//
// A layout read back from JSON renders identically to the scene it was
// exported from.
package graph
