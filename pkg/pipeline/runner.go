package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/taskmap/pkg/cache"
	"github.com/matzehuels/taskmap/pkg/core/layout/force"
	"github.com/matzehuels/taskmap/pkg/core/layout/geometry"
	"github.com/matzehuels/taskmap/pkg/core/render"
	"github.com/matzehuels/taskmap/pkg/core/taskgraph"
	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/observability"
	"github.com/matzehuels/taskmap/pkg/task"
)

// keyTypeAnalysis labels analysis cache events.
const keyTypeAnalysis = "analysis"

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// AnalysisTTL is the lifetime of cached analyses.
	AnalysisTTL time.Duration
}

// NewRunner creates a runner. A nil keyer uses DefaultKeyer, a nil cache
// disables caching, and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		AnalysisTTL: DefaultAnalysisTTL,
	}
}

// Execute runs analyze → layout → render over tasks.
func (r *Runner) Execute(ctx context.Context, tasks []task.Task, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.logger(opts).With("run", result.RunID[:8])

	start := time.Now()
	g, a, hit, err := r.AnalyzeWithCacheInfo(ctx, tasks, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Graph = g
	result.Analysis = a
	result.CacheInfo.AnalysisHit = hit
	result.Stats.AnalyzeTime = time.Since(start)
	result.Stats.TaskCount = g.Len()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.CycleCount = len(a.Cycles)
	result.Stats.MaxDepth = a.MaxDepth

	logger.Info("analyzed tasks",
		"tasks", g.Len(),
		"edges", g.EdgeCount(),
		"cycles", len(a.Cycles),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	start = time.Now()
	l, err := r.ComputeLayout(ctx, g, a, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(start)

	logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"iterations", opts.Layout.Iterations,
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"engine", opts.Engine,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AnalyzeWithCacheInfo builds the graph and its analysis, reporting whether
// the analysis came from the cache. Corrupt cache entries are recomputed.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, tasks []task.Task, opts Options) (*taskgraph.Graph, graph.Analysis, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(tasks))
	start := time.Now()

	if err := ctx.Err(); err != nil {
		hooks.OnAnalyzeComplete(ctx, len(tasks), 0, time.Since(start), err)
		return nil, graph.Analysis{}, false, err
	}

	g := taskgraph.New(tasks)
	fp := task.Fingerprint(tasks)
	key := r.Keyer.AnalysisKey(fp)

	logger := r.logger(opts)
	if !opts.Refresh {
		if a, ok := r.cachedAnalysis(ctx, logger, key, fp); ok {
			hooks.OnAnalyzeComplete(ctx, g.Len(), len(a.Cycles), time.Since(start), nil)
			return g, a, true, nil
		}
	}

	a := graph.NewAnalysis(g)
	a.Fingerprint = fp

	if data, err := graph.MarshalAnalysis(a); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.AnalysisTTL); err != nil {
			logger.Debug("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeAnalysis, len(data))
		}
	}

	hooks.OnAnalyzeComplete(ctx, g.Len(), len(a.Cycles), time.Since(start), nil)
	return g, a, false, nil
}

func (r *Runner) cachedAnalysis(ctx context.Context, logger *log.Logger, key, fp string) (graph.Analysis, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)
		return graph.Analysis{}, false
	}
	a, err := graph.UnmarshalAnalysis(data)
	if err != nil || a.Fingerprint != fp {
		observability.Cache().OnCacheMiss(ctx, keyTypeAnalysis)
		return graph.Analysis{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeAnalysis)
	return a, true
}

// logger returns the run's logger: opts.Logger if set, else the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Analyze is AnalyzeWithCacheInfo without the cache hit flag.
func (r *Runner) Analyze(ctx context.Context, tasks []task.Task, opts Options) (*taskgraph.Graph, graph.Analysis, error) {
	g, a, _, err := r.AnalyzeWithCacheInfo(ctx, tasks, opts)
	return g, a, err
}

// ComputeLayout runs the force simulation over g and builds the edge
// geometry. Cycle flags and depths are taken from a.
func (r *Runner) ComputeLayout(ctx context.Context, g *taskgraph.Graph, a graph.Analysis, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	cfg := opts.Layout

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Len(), cfg.Iterations)
	start := time.Now()

	positions, err := force.Compute(ctx, g, cfg.Options)
	if err != nil {
		hooks.OnLayoutComplete(ctx, g.Len(), time.Since(start), err)
		return graph.Layout{}, err
	}
	edges := geometry.Edges(g, positions, cfg.NodeRadius, cfg.Curvature)
	scene := render.NewScene(g, positions, edges, a.CycleFlags(), a.Depths(), render.Canvas{
		Width:  cfg.Width,
		Height: cfg.Height,
		Radius: cfg.NodeRadius,
	})

	hooks.OnLayoutComplete(ctx, g.Len(), time.Since(start), nil)
	return graph.FromScene(scene, cfg), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
