// Package config loads planarfaces settings from a TOML or YAML file.
//
// Settings are layered: built-in defaults, then the config file, then
// command-line flags (applied by the caller). The file is looked up at
// $XDG_CONFIG_HOME/planarfaces/config.toml unless a path is given.
//
//	strategy = "legacy"
//	formats = ["json", "svg"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/planarfaces/pkg/errors"
	"github.com/matzehuels/planarfaces/pkg/pipeline"
)

const appName = "planarfaces"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the HTTP listen address used when none is configured.
const DefaultAddr = ":8080"

// Config is the full set of file settings.
type Config struct {
	Strategy           string       `toml:"strategy" yaml:"strategy"`
	AllowParallelEdges bool         `toml:"allow_parallel_edges" yaml:"allow_parallel_edges"`
	Formats            []string     `toml:"formats" yaml:"formats"`
	Cache              CacheConfig  `toml:"cache" yaml:"cache"`
	Server             ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend   string   `toml:"backend" yaml:"backend"`
	Dir       string   `toml:"dir" yaml:"dir"`
	RedisAddr string   `toml:"redis_addr" yaml:"redis_addr"`
	TTL       Duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Strategy: pipeline.DefaultStrategy,
		Formats:  []string{pipeline.DefaultFormat},
		Cache: CacheConfig{
			Backend: BackendFile,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads the config file at path on top of the defaults. The format is
// chosen by extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return Config{}, perrors.New(perrors.ErrCodeInvalidFormat, "config %s: unsupported extension", path)
	}
	if err != nil {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the config at DefaultPath. A missing file yields the
// defaults.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// PipelineOptions converts the detection and output settings.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Strategy:           c.Strategy,
		AllowParallelEdges: c.AllowParallelEdges,
		Formats:            append([]string(nil), c.Formats...),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/planarfaces/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or
// $XDG_CACHE_HOME/planarfaces (~/.cache/planarfaces) when unset.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
