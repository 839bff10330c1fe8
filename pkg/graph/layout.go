package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/taskmap/pkg/core/layout/geometry"
	"github.com/matzehuels/taskmap/pkg/core/render"
	"github.com/matzehuels/taskmap/pkg/task"
)

// FromScene exports a scene together with the configuration it was
// computed with.
func FromScene(s render.Scene, cfg Config) Layout {
	l := Layout{
		Config: cfg,
		Nodes:  make([]LayoutNode, len(s.Nodes)),
		Edges:  make([]LayoutEdge, len(s.Edges)),
	}
	for i, n := range s.Nodes {
		l.Nodes[i] = LayoutNode{
			ID:      n.ID,
			Title:   n.Title,
			X:       n.X,
			Y:       n.Y,
			Depth:   n.Depth,
			InCycle: n.InCycle,
			Related: n.Related,
		}
	}
	for i, e := range s.Edges {
		l.Edges[i] = LayoutEdge{From: e.From, To: e.To, Path: e.Path, D: e.Path.D(), InCycle: e.InCycle}
	}
	return l
}

// Scene rebuilds the render scene described by l.
func (l Layout) Scene() render.Scene {
	s := render.Scene{
		Canvas: render.Canvas{
			Width:  l.Config.Width,
			Height: l.Config.Height,
			Radius: l.Config.NodeRadius,
		},
		Nodes: make([]render.Node, len(l.Nodes)),
		Edges: make([]render.Edge, len(l.Edges)),
	}
	for i, n := range l.Nodes {
		s.Nodes[i] = render.Node{
			ID:      n.ID,
			Title:   n.Title,
			Label:   task.Task{Title: n.Title}.Label(render.LabelLimit),
			X:       n.X,
			Y:       n.Y,
			Depth:   n.Depth,
			InCycle: n.InCycle,
			Related: n.Related,
		}
	}
	for i, e := range l.Edges {
		s.Edges[i] = render.Edge{From: e.From, To: e.To, Path: e.Path, InCycle: e.InCycle}
	}
	return s
}

// EdgePaths returns the edges in geometry form.
func (l Layout) EdgePaths() []geometry.EdgePath {
	out := make([]geometry.EdgePath, len(l.Edges))
	for i, e := range l.Edges {
		out[i] = geometry.EdgePath{From: e.From, To: e.To, Path: e.Path}
	}
	return out
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout. The canvas must
// have a positive size.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Config.Width <= 0 || l.Config.Height <= 0 {
		return Layout{}, fmt.Errorf("layout canvas must have positive width and height")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
