package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"folderd/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr            string   `json:"addr" yaml:"addr" toml:"addr"`
	AdminAddr       string   `json:"admin_addr" yaml:"admin_addr" toml:"admin_addr"`
	OllamaURL       string   `json:"ollama_url" yaml:"ollama_url" toml:"ollama_url"`
	Model           string   `json:"model" yaml:"model" toml:"model"`
	UpstreamTimeout Duration `json:"upstream_timeout" yaml:"upstream_timeout" toml:"upstream_timeout"`
	ConnectTimeout  Duration `json:"connect_timeout" yaml:"connect_timeout" toml:"connect_timeout"`
	AnalyzeTimeout  Duration `json:"analyze_timeout" yaml:"analyze_timeout" toml:"analyze_timeout"`
	MaxBodyBytes    int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat       string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORS            CORS     `json:"cors" yaml:"cors" toml:"cors"`
}

// CORS configures the optional cross-origin middleware.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Duration is a time.Duration written as a Go duration string ("30s", "2m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading "~/" is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, cfg.Validate()
}

// Validate checks the fields that have a constrained shape. Unset fields pass.
func (c Config) Validate() error {
	if c.OllamaURL != "" {
		u, err := url.Parse(c.OllamaURL)
		if err != nil {
			return fmt.Errorf("ollama_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("ollama_url: scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("ollama_url: missing host")
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return fmt.Errorf("log_format: must be json or console, got %q", c.LogFormat)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes: must not be negative")
	}
	for name, d := range map[string]Duration{
		"upstream_timeout": c.UpstreamTimeout,
		"connect_timeout":  c.ConnectTimeout,
		"analyze_timeout":  c.AnalyzeTimeout,
	} {
		if d.Duration < 0 {
			return fmt.Errorf("%s: must not be negative", name)
		}
	}
	return nil
}
