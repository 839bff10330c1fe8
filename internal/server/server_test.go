package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/pipeline"
	"github.com/matzehuels/taskmap/pkg/source"
	"github.com/matzehuels/taskmap/pkg/task"
)

var sampleTasks = []task.Task{
	{ID: 1, Title: "Plan"},
	{ID: 2, Title: "Build", Dependencies: []int{1}},
	{ID: 3, Title: "Ship", Dependencies: []int{2, 4}},
	{ID: 4, Title: "Review", Dependencies: []int{3}},
}

func newTestServer(t *testing.T, src source.Source, extra ...Option) *httptest.Server {
	t.Helper()
	opts := extra
	if src != nil {
		opts = append(opts, WithSource(src))
	}
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, nil), nil, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}
	body := decode[map[string]any](t, resp)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, nil)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q", got)
	}
}

func TestAnalyze(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv.URL+"/api/analyze", map[string]any{"tasks": sampleTasks})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	a := decode[graph.Analysis](t, resp)
	if !a.HasCycles || len(a.Tasks) != 4 {
		t.Errorf("analysis = %+v", a)
	}
	if tr, _ := a.Task(2); tr.Depth != 1 || tr.InCycle {
		t.Errorf("task 2 = %+v", tr)
	}
}

func TestAnalyzeBadBody(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown field", `{"tasks": [], "extra": 1}`},
		{"control chars in title", `{"tasks": [{"id": 1, "title": "a\u0007b"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/analyze", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			body := decode[errorBody](t, resp)
			if body.Error.Code != "INVALID_INPUT" || body.Error.RequestID == "" {
				t.Errorf("error body = %+v", body)
			}
		})
	}
}

func oversizedTasks() []task.Task {
	tasks := make([]task.Task, pipeline.MaxTasks+1)
	for i := range tasks {
		tasks[i] = task.Task{ID: i + 1}
	}
	return tasks
}

func TestTooManyTasks(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, path := range []string{"/api/analyze", "/api/layout", "/api/render"} {
		t.Run(path, func(t *testing.T) {
			resp := post(t, srv.URL+path, map[string]any{"tasks": oversizedTasks()})
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			body := decode[errorBody](t, resp)
			if body.Error.Code != "INVALID_INPUT" || !strings.Contains(body.Error.Message, "too many tasks") {
				t.Errorf("error body = %+v", body)
			}
		})
	}

	sourced := newTestServer(t, source.Static(oversizedTasks()))
	if resp := get(t, sourced.URL+"/api/cycles"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("cycles over an oversized source = %d, want 400", resp.StatusCode)
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := newTestServer(t, nil, WithTimeout(time.Nanosecond))
	resp := post(t, srv.URL+"/api/layout", map[string]any{
		"tasks":   sampleTasks,
		"options": map[string]any{"layout": map[string]any{"iterations": pipeline.MaxIterations}},
	})
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", resp.StatusCode)
	}
	body := decode[errorBody](t, resp)
	if body.Error.Code != "TIMEOUT" {
		t.Errorf("error body = %+v", body)
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv.URL+"/api/layout", map[string]any{
		"tasks":   sampleTasks,
		"options": map[string]any{"layout": map[string]any{"width": 600, "height": 300, "seed": 5}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	l := decode[graph.Layout](t, resp)
	if l.Config.Width != 600 || l.Config.Height != 300 || l.Config.Iterations != 50 {
		t.Errorf("config = %+v", l.Config)
	}
	if len(l.Nodes) != 4 || len(l.Edges) != 4 {
		t.Errorf("layout has %d nodes, %d edges", len(l.Nodes), len(l.Edges))
	}
	for _, e := range l.Edges {
		if !strings.HasPrefix(e.D, "M ") {
			t.Errorf("edge %d->%d path %q", e.From, e.To, e.D)
		}
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<?xml"},
		{"dot", "text/vnd.graphviz", "digraph"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, srv.URL+"/api/render?format="+tt.format, map[string]any{"tasks": sampleTasks})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q", got)
			}
			var buf bytes.Buffer
			buf.ReadFrom(resp.Body)
			if !strings.HasPrefix(strings.TrimSpace(buf.String()), tt.prefix) {
				t.Errorf("body starts %.30q", buf.String())
			}
		})
	}
}

func TestRenderBadFormat(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := post(t, srv.URL+"/api/render?format=gif", map[string]any{"tasks": sampleTasks})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSourceEndpoints(t *testing.T) {
	srv := newTestServer(t, source.Static(sampleTasks))

	resp := get(t, srv.URL+"/api/cycles")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cycles status = %d", resp.StatusCode)
	}
	report := decode[graph.CycleReport](t, resp)
	if !report.HasCycles || len(report.AffectedTasks) != 2 {
		t.Errorf("cycle report = %+v", report)
	}

	info := decode[analysis.Info](t, get(t, srv.URL+"/api/tasks/3/dependencies"))
	if info.BlockedCount != 2 || info.BlockingCount != 1 {
		t.Errorf("info = %+v", info)
	}

	h := decode[analysis.Highlight](t, get(t, srv.URL+"/api/tasks/1/highlight"))
	if !h.Contains(4) || h.InCycle {
		t.Errorf("highlight = %+v", h)
	}

	body := decode[map[string][]task.Task](t, get(t, srv.URL+"/api/tasks"))
	if len(body["tasks"]) != 4 {
		t.Errorf("tasks = %+v", body)
	}
}

func TestSourceEndpointErrors(t *testing.T) {
	srv := newTestServer(t, source.Static(sampleTasks))
	tests := []struct {
		path   string
		status int
	}{
		{"/api/tasks/99/dependencies", http.StatusNotFound},
		{"/api/tasks/abc/highlight", http.StatusBadRequest},
		{"/api/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		if resp := get(t, srv.URL+tt.path); resp.StatusCode != tt.status {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
	}

	bare := newTestServer(t, nil)
	if resp := get(t, bare.URL+"/api/cycles"); resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("cycles without source = %d, want 501", resp.StatusCode)
	}
}

func TestOptionsMerge(t *testing.T) {
	defaults := pipeline.Options{Formats: []string{"svg"}, Engine: "native", Title: "Board"}
	defaults.Layout.Width = 1000
	defaults.Layout.Seed = 9
	s := New(nil, nil, WithDefaults(defaults))

	req := request{Options: &pipeline.Options{Engine: "graphviz"}}
	req.Options.Layout.Height = 200
	got := s.options(req)

	if got.Layout.Width != 1000 || got.Layout.Height != 200 || got.Layout.Seed != 9 {
		t.Errorf("layout = %+v", got.Layout)
	}
	if got.Engine != "graphviz" || got.Title != "Board" || got.Formats[0] != "svg" {
		t.Errorf("opts = %+v", got)
	}

	got.Formats[0] = "dot"
	if s.defaults.Formats[0] != "svg" {
		t.Error("options should not alias the default formats")
	}
}
