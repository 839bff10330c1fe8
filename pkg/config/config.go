// Package config loads the optional taskmap configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/taskmap/config.toml
// (~/.config/taskmap/config.toml when XDG_CONFIG_HOME is unset). Every
// section is optional; missing keys keep their defaults, and command-line
// flags override whatever the file sets.
//
//	[layout]
//	width = 1200
//	height = 600
//	iterations = 80
//	seed = 42
//
//	[render]
//	formats = ["svg", "json"]
//	engine = "native"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[source]
//	kind = "http"
//	url = "https://tasks.example.com/api/tasks/"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/taskmap/pkg/graph"
	"github.com/matzehuels/taskmap/pkg/source"
)

const appName = "taskmap"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Layout graph.Config  `toml:"layout"`
	Render Render        `toml:"render"`
	Cache  Cache         `toml:"cache"`
	Source source.Config `toml:"source"`
	Server Server        `toml:"server"`
}

// Render selects output formats and the rendering engine.
type Render struct {
	Formats []string `toml:"formats"`
	Engine  string   `toml:"engine"`
	Title   string   `toml:"title"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a string ("30s", "24h") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: Render{Formats: []string{"svg"}, Engine: "native"},
		Cache: Cache{
			Backend: CacheFile,
			Prefix:  "taskmap:",
			TTL:     Duration{24 * time.Hour},
		},
		Source: source.Config{Kind: source.KindFile},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     Duration{30 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file-cache directory (~/.cache/taskmap).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads path over the defaults. An empty path uses [Path]; a missing
// file at the default location is not an error, but a missing explicit
// path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}
