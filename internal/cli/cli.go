// Package cli implements the taskmap command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/pkg/buildinfo"
	"github.com/matzehuels/taskmap/pkg/cache"
	"github.com/matzehuels/taskmap/pkg/config"
	"github.com/matzehuels/taskmap/pkg/pipeline"
	"github.com/matzehuels/taskmap/pkg/source"
	"github.com/matzehuels/taskmap/pkg/task"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "taskmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before every command runs.
	Config config.Config

	configPath string
	format     string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Taskmap analyzes and draws task dependency graphs",
		Long:         `Taskmap reads a list of tasks and their dependencies, finds circular dependencies, computes dependency depths, and draws the graph with a force-directed layout.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskmap/config.toml)")
	root.PersistentFlags().StringVar(&c.format, "input-format", "", "task file format: json, yaml, or toml (default: from extension)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Backend == config.CacheRedis {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), "cli")
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		runner.AnalysisTTL = ttl
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL, c.Config.Cache.Prefix)
	case "", config.CacheFile:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.Config.Cache.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// default (~/.cache/taskmap/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	return config.CacheDir()
}

// =============================================================================
// Task Input
// =============================================================================

// loadTasks reads tasks from the file argument when given, otherwise from
// the configured source.
func (c *CLI) loadTasks(ctx context.Context, args []string) ([]task.Task, error) {
	cfg := c.Config.Source
	if len(args) > 0 {
		cfg = source.Config{Kind: source.KindFile, Path: args[0]}
	}
	if c.format != "" {
		cfg.Format = c.format
	}
	if (cfg.Kind == "" || cfg.Kind == source.KindFile) && cfg.Path == "" {
		return nil, fmt.Errorf("no task file given and no source configured (pass a path, or - for stdin)")
	}

	src, err := source.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	prog := newProgress(c.Logger)
	tasks, err := src.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d tasks from %s", len(tasks), src.Name()))
	return tasks, nil
}
