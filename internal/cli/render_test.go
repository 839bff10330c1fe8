package cli

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/pipeline"
	"github.com/matzehuels/taskmap/pkg/task"
)

type recordedStatus []string

func (r *recordedStatus) SetMessage(msg string) { *r = append(*r, msg) }

func TestRenderStagesReportsProgress(t *testing.T) {
	opts := pipeline.Options{Layout: graph.Config{}.WithDefaults(), Formats: []string{pipeline.FormatDOT}}
	opts.Layout.Seed = 3
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	tasks := []task.Task{
		{ID: 1, Title: "Design"},
		{ID: 2, Title: "Build", Dependencies: []int{1, 3}},
		{ID: 3, Title: "Review", Dependencies: []int{2}},
	}

	var status recordedStatus
	out, err := renderStages(context.Background(), pipeline.NewRunner(nil, nil, nil), tasks, opts, &status)
	if err != nil {
		t.Fatalf("renderStages: %v", err)
	}

	want := []string{"Analyzing 3 tasks...", "Computing layout...", "Rendering dot..."}
	if !slices.Equal(status, want) {
		t.Errorf("status = %q, want %q", status, want)
	}
	if out.tasks != 3 || out.edges != 3 || out.cycles != 1 || out.cached {
		t.Errorf("rendered = %+v", out)
	}
	if len(out.artifacts[pipeline.FormatDOT]) == 0 {
		t.Error("missing dot artifact")
	}
}

func TestRenderStagesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var status recordedStatus
	opts := pipeline.Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	_, err := renderStages(ctx, pipeline.NewRunner(nil, nil, nil), []task.Task{{ID: 1}}, opts, &status)
	if err == nil {
		t.Fatal("cancelled render should fail")
	}
	if len(status) != 1 {
		t.Errorf("status = %q, want only the analyze stage", status)
	}
}
