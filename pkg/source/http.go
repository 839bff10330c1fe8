package source

import (
	"bytes"
	"context"
	"maps"

	"github.com/matzehuels/taskmap/pkg/errors"
	"github.com/matzehuels/taskmap/pkg/httputil"
	"github.com/matzehuels/taskmap/pkg/task"
)

// HTTP fetches tasks from a remote task API. The endpoint may return a bare
// JSON array or a {"tasks": [...]} object.
type HTTP struct {
	URL    string
	client *httputil.Client
}

// NewHTTP validates url and returns an HTTP source. A non-empty token is sent
// as a bearer token. A nil client uses the httputil defaults. The caller's
// client is copied and never modified.
func NewHTTP(url, token string, client *httputil.Client) (*HTTP, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	if client == nil {
		client = httputil.NewClient(nil)
	}
	c := *client
	c.Headers = maps.Clone(client.Headers)
	if token != "" {
		if c.Headers == nil {
			c.Headers = map[string]string{}
		}
		c.Headers["Authorization"] = "Bearer " + token
	}
	return &HTTP{URL: url, client: &c}, nil
}

// Name implements Source.
func (h *HTTP) Name() string { return h.URL }

// Tasks implements Source.
func (h *HTTP) Tasks(ctx context.Context) ([]task.Task, error) {
	body, err := h.client.Get(ctx, h.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "fetch tasks from %s", h.URL)
	}
	tasks, err := task.Read(bytes.NewReader(body), task.FormatJSON)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tasks from %s", h.URL)
	}
	return tasks, nil
}

// Close does nothing.
func (h *HTTP) Close() error { return nil }
