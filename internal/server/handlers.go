package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/taskmap/pkg/buildinfo"
	"github.com/matzehuels/taskmap/pkg/core/analysis"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/errors"
	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/pipeline"
	"github.com/matzehuels/taskmap/pkg/task"
)

// request is the body of the POST endpoints.
type request struct {
	Tasks   []task.Task       `json:"tasks"`
	Options *pipeline.Options `json:"options,omitempty"`
}

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := s.options(req)
	_, a, err := s.runner.Analyze(r.Context(), req.Tasks, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	l, err := s.layout(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := s.options(req)
	opts.Formats = []string{format}
	if engine := r.URL.Query().Get("engine"); engine != "" {
		opts.Engine = engine
	}

	res, err := s.runner.Execute(r.Context(), req.Tasks, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Taskmap-Run", res.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.sourceTasks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.sourceTasks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	_, a, err := s.runner.Analyze(r.Context(), tasks, s.options(request{}))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.CycleReport())
}

func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	g, id, err := s.sourceGraph(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	info, ok := analysis.InfoFor(g, id)
	if !ok {
		writeError(w, r, notFound("task %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	g, id, err := s.sourceGraph(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h, ok := analysis.HighlightFor(g, id)
	if !ok {
		writeError(w, r, notFound("task %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) layout(ctx context.Context, req request) (graph.Layout, error) {
	opts := s.options(req)
	g, a, err := s.runner.Analyze(ctx, req.Tasks, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return s.runner.ComputeLayout(ctx, g, a, opts)
}

// options overlays the request's options on the server defaults. Layout
// parameters are merged field by field so a request can set just a seed.
func (s *Server) options(req request) pipeline.Options {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)
	if req.Options == nil {
		return opts
	}
	o := *req.Options
	mergeLayout(&opts.Layout, o.Layout)
	if len(o.Formats) > 0 {
		opts.Formats = o.Formats
	}
	if o.Engine != "" {
		opts.Engine = o.Engine
	}
	if o.Title != "" {
		opts.Title = o.Title
	}
	if o.PNGScale > 0 {
		opts.PNGScale = o.PNGScale
	}
	opts.NoInteraction = opts.NoInteraction || o.NoInteraction
	opts.Refresh = o.Refresh
	return opts
}

func mergeLayout(dst *graph.Config, src graph.Config) {
	setF := func(d *float64, v float64) {
		if v != 0 {
			*d = v
		}
	}
	setF(&dst.Width, src.Width)
	setF(&dst.Height, src.Height)
	setF(&dst.Padding, src.Padding)
	setF(&dst.NodeRadius, src.NodeRadius)
	setF(&dst.Repulsion, src.Repulsion)
	setF(&dst.Spring, src.Spring)
	setF(&dst.Damping, src.Damping)
	setF(&dst.Curvature, src.Curvature)
	if src.Iterations != 0 {
		dst.Iterations = src.Iterations
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
	}
}

func (s *Server) sourceTasks(ctx context.Context) ([]task.Task, error) {
	if s.source == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no task source configured")
	}
	tasks, err := s.source.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	if err := pipeline.ValidateTaskCount(len(tasks)); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Server) sourceGraph(r *http.Request) (*taskgraph.Graph, int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "task id must be an integer")
	}
	tasks, err := s.sourceTasks(r.Context())
	if err != nil {
		return nil, 0, err
	}
	return taskgraph.New(tasks), id, nil
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (request, error) {
	var req request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if err := pipeline.ValidateTaskCount(len(req.Tasks)); err != nil {
		return req, err
	}
	if err := errors.ValidateTasks(req.Tasks); err != nil {
		return req, err
	}
	return req, nil
}

func notFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = RequestIDFromContext(r.Context())
	writeJSON(w, errors.HTTPStatus(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
