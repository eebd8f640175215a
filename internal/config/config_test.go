package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/planarfaces/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("default addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}

func TestLoad(t *testing.T) {
	want := Config{
		Strategy:           "legacy",
		AllowParallelEdges: true,
		Formats:            []string{"json", "svg"},
		Cache: CacheConfig{
			Backend:   BackendRedis,
			RedisAddr: "localhost:6379",
			TTL:       Duration(24 * time.Hour),
		},
		Server: ServerConfig{Addr: ":9090"},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `
strategy = "legacy"
allow_parallel_edges = true
formats = ["json", "svg"]

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "24h"

[server]
addr = ":9090"
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `
strategy: legacy
allow_parallel_edges: true
formats: [json, svg]
cache:
  backend: redis
  redis_addr: localhost:6379
  ttl: 24h
server:
  addr: ":9090"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if diff := cmp.Diff(want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.toml", `strategy = "legacy"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if diff := cmp.Diff(def.Formats, cfg.Formats); diff != "" {
		t.Errorf("unset formats should keep defaults (-want +got):\n%s", diff)
	}
	if cfg.Server.Addr != def.Server.Addr {
		t.Errorf("unset addr should keep default, got %q", cfg.Server.Addr)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    perrors.Code
	}{
		{"unknown extension", "config.ini", "strategy=legacy", perrors.ErrCodeInvalidFormat},
		{"bad toml", "config.toml", "strategy = ", perrors.ErrCodeInvalidFormat},
		{"unknown toml key", "config.toml", `colour = "red"`, perrors.ErrCodeInvalidFormat},
		{"unknown yaml key", "config.yaml", "colour: red", perrors.ErrCodeInvalidFormat},
		{"bad ttl", "config.toml", "[cache]\nttl = \"soon\"", perrors.ErrCodeInvalidFormat},
		{"bad strategy", "config.toml", `strategy = "bfs"`, perrors.ErrCodeInvalidInput},
		{"bad format", "config.toml", `formats = ["png"]`, perrors.ErrCodeInvalidInput},
		{"bad backend", "config.toml", "[cache]\nbackend = \"memcached\"", perrors.ErrCodeInvalidInput},
		{"redis without addr", "config.toml", "[cache]\nbackend = \"redis\"", perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !perrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault without file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`strategy = "legacy"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Strategy != "legacy" {
		t.Errorf("Strategy = %q, want legacy", cfg.Strategy)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := Default().CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}

	cfg := Default()
	cfg.Cache.Dir = "/srv/cache"
	if dir, _ := cfg.CacheDir(); dir != "/srv/cache" {
		t.Errorf("explicit cache dir ignored: %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	home, _ := os.UserHomeDir()
	dir, _ = Default().CacheDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "legacy"
	cfg.AllowParallelEdges = true

	opts := cfg.PipelineOptions()
	if opts.Strategy != "legacy" || !opts.AllowParallelEdges {
		t.Errorf("PipelineOptions = %+v", opts)
	}
	opts.Formats[0] = "svg"
	if cfg.Formats[0] != "json" {
		t.Error("PipelineOptions should copy formats")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load(examples/config.toml) error: %v", err)
	}
	if time.Duration(cfg.Cache.TTL) != 168*time.Hour {
		t.Errorf("TTL = %v, want 168h", time.Duration(cfg.Cache.TTL))
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}
