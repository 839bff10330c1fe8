package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/taskmap/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/var/cache/tasks"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/var/cache/tasks" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"from file", []string{"plans/sprint.yaml"}, "plans/sprint.graph.svg"},
		{"stdin", []string{"-"}, "tasks.graph.svg"},
		{"configured source", nil, "tasks.graph.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutput(tt.args, "graph.svg"); got != tt.want {
				t.Errorf("defaultOutput(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, fallback, want string
	}{
		{"", "tasks.graph.svg", "tasks.graph"},
		{"out/graph", "tasks.graph.svg", "out/graph"},
		{"out/graph.png", "", "out/graph"},
		{"out/graph.v2", "", "out/graph.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.fallback); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.fallback, got, tt.want)
		}
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		backend string
		noCache bool
		wantDir bool
		wantErr bool
	}{
		{config.CacheFile, false, true, false},
		{"", false, true, false},
		{config.CacheNone, false, false, false},
		{config.CacheFile, true, false, false},
		{"memcached", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			c.Config.Cache.Backend = tt.backend

			ch, err := c.newCache(t.Context(), tt.noCache)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer ch.Close()

			fc, isFile := ch.(interface{ Dir() string })
			if isFile != tt.wantDir {
				t.Fatalf("newCache() = %T, want file cache %v", ch, tt.wantDir)
			}
			if isFile && !strings.HasSuffix(fc.Dir(), appName) {
				t.Errorf("file cache dir = %q", fc.Dir())
			}
		})
	}
}
