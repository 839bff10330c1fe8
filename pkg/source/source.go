// Package source loads task lists from files, remote task APIs, and
// MongoDB collections.
//
// Every source returns the raw task list; nothing is filtered or
// normalized here. Duplicate IDs, dangling dependencies, and cycles are
// passed through to the graph model, which tolerates all of them.
//
//	src, err := source.Open(ctx, source.Config{Kind: source.KindHTTP, URL: url})
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	tasks, err := src.Tasks(ctx)
package source

import (
	"context"
	"fmt"

	"github.com/matzehuels/taskmap/pkg/task"
)

// Source kinds accepted by [Open].
const (
	KindFile  = "file"
	KindHTTP  = "http"
	KindMongo = "mongo"
)

// Source provides a task list.
type Source interface {
	// Name describes the source for logs and error messages.
	Name() string

	// Tasks fetches the current task list.
	Tasks(ctx context.Context) ([]task.Task, error)

	// Close releases connections held by the source.
	Close() error
}

// Config selects and configures a source. Only the fields for Kind are read.
type Config struct {
	Kind string `toml:"kind" json:"kind"`

	Path   string `toml:"path" json:"path,omitempty"`
	Format string `toml:"format" json:"format,omitempty"`

	URL   string `toml:"url" json:"url,omitempty"`
	Token string `toml:"token" json:"-"`

	MongoURI   string `toml:"mongo_uri" json:"-"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
}

// Open builds the source described by cfg. An empty Kind means file.
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Kind {
	case "", KindFile:
		return NewFile(cfg.Path, cfg.Format)
	case KindHTTP:
		return NewHTTP(cfg.URL, cfg.Token, nil)
	case KindMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	default:
		return nil, fmt.Errorf("unknown source kind %q (want %s, %s or %s)", cfg.Kind, KindFile, KindHTTP, KindMongo)
	}
}

// Static serves a fixed task list.
type Static []task.Task

// Name implements Source.
func (Static) Name() string { return "static" }

// Tasks returns a copy of the list.
func (s Static) Tasks(ctx context.Context) ([]task.Task, error) {
	return task.Clone(s), nil
}

// Close does nothing.
func (Static) Close() error { return nil }
