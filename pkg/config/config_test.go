package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != CacheFile || cfg.Server.Addr != ":8080" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
width = 1200
iterations = 80
seed = 7
curvature = 0.2

[render]
formats = ["svg", "dot"]
engine = "graphviz"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "1h"

[source]
kind = "http"
url = "https://tasks.example.com/api/tasks/"

[server]
addr = ":9000"
read_timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Width != 1200 || cfg.Layout.Iterations != 80 || cfg.Layout.Seed != 7 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.Curvature != 0.2 {
		t.Errorf("curvature = %v", cfg.Layout.Curvature)
	}
	if cfg.Render.Engine != "graphviz" || len(cfg.Render.Formats) != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Prefix != "taskmap:" {
		t.Errorf("unset prefix should keep default, got %q", cfg.Cache.Prefix)
	}
	if cfg.Source.Kind != "http" || cfg.Source.URL == "" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout.Duration != 60*time.Second {
		t.Errorf("unset write_timeout should keep default")
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[layout]\nwidht = 5\n"), 0644)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "widht") {
		t.Errorf("err = %v, want unknown key error", err)
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected duration parse error")
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_CACHE_HOME", "/cache")

	if p, _ := Path(); p != filepath.Join("/cfg", "taskmap", "config.toml") {
		t.Errorf("Path() = %s", p)
	}
	if p, _ := CacheDir(); p != filepath.Join("/cache", "taskmap") {
		t.Errorf("CacheDir() = %s", p)
	}
}
