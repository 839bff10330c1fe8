package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/taskmap/pkg/errors"
	"github.com/matzehuels/taskmap/pkg/task"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// File reads tasks from a JSON, TOML, or YAML file.
type File struct {
	Path   string
	Format string

	// stdin is read when Path is [Stdin].
	stdin io.Reader
}

// NewFile validates path and resolves the format. An empty format is
// inferred from the extension; standard input defaults to JSON.
func NewFile(path, format string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if format == "" {
		if path == Stdin {
			format = task.FormatJSON
		} else {
			f, err := task.FormatFromPath(path)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", path)
			}
			format = f
		}
	}
	return &File{Path: path, Format: format, stdin: os.Stdin}, nil
}

// Name implements Source.
func (f *File) Name() string {
	if f.Path == Stdin {
		return "stdin"
	}
	return f.Path
}

// Tasks implements Source.
func (f *File) Tasks(ctx context.Context) ([]task.Task, error) {
	var r io.Reader
	if f.Path == Stdin {
		r = f.stdin
	} else {
		fh, err := os.Open(f.Path)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "task file %s", f.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Path, err)
		}
		defer fh.Close()
		r = fh
	}

	tasks, err := task.Read(r, f.Format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", f.Name())
	}
	return tasks, nil
}

// Close does nothing.
func (f *File) Close() error { return nil }
