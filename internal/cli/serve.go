package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taskmap/internal/server"
	"github.com/matzehuels/taskmap/pkg/source"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   layoutFlags
		addr    string
		srcPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes analysis, layout, and rendering over HTTP.

Clients post task lists to /api/analyze, /api/layout, and /api/render. When a
source is configured (or --tasks is given), the GET endpoints under /api/tasks
and /api/cycles read tasks from it on every request.`,
		Example: `  taskmap serve --addr :9090
  taskmap serve --tasks tasks.json --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			defaults := c.options(cmd, &flags)
			defaults.Logger = nil
			// Each request validates its own merged options.
			check := defaults
			if err := check.ValidateAndSetDefaults(); err != nil {
				return err
			}
			opts := []server.Option{server.WithDefaults(defaults)}

			src, err := c.serveSource(ctx, srcPath)
			if err != nil {
				return err
			}
			if src != nil {
				defer src.Close()
				opts = append(opts, server.WithSource(src))
				c.Logger.Info("serving tasks", "source", src.Name())
			}

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			err = server.New(runner, c.Logger, opts...).ListenAndServe(ctx, cfg)
			if errors.Is(err, context.Canceled) {
				printSuccess("Server stopped")
				return nil
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&srcPath, "tasks", "", "serve tasks from this file on the GET endpoints")

	return cmd
}

// serveSource opens the source backing the GET endpoints, or returns nil
// when none is configured.
func (c *CLI) serveSource(ctx context.Context, path string) (source.Source, error) {
	cfg := c.Config.Source
	if path != "" {
		cfg = source.Config{Kind: source.KindFile, Path: path, Format: c.format}
	}
	if (cfg.Kind == "" || cfg.Kind == source.KindFile) && cfg.Path == "" {
		return nil, nil
	}
	if cfg.Path == source.Stdin {
		return nil, errors.New("serve cannot read tasks from stdin")
	}
	return source.Open(ctx, cfg)
}
