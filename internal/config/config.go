// Package config loads and normalizes the fsgate configuration. The loaded
// snapshot is immutable for the process lifetime; every request shares it
// read-only.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names. These match the original deployment surface
// and override any file-based configuration.
const (
	EnvAllowedDirectories = "ALLOWED_DIRECTORIES"
	EnvMaxFileSize        = "MAX_FILE_SIZE"
	EnvAllowedExtensions  = "ALLOWED_EXTENSIONS"
	EnvAuditLog           = "FSGATE_AUDIT_LOG"
)

// DefaultMaxFileSize is 10 MiB.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Config holds all configurable parameters.
type Config struct {
	AllowedDirectories []string `yaml:"allowed_directories"`
	MaxFileSize        int64    `yaml:"max_file_size"`
	AllowedExtensions  []string `yaml:"allowed_extensions"`
	AuditLogPath       string   `yaml:"audit_log"`
}

// DefaultConfig returns the built-in defaults. No directories are allowed
// by default; serving anything requires explicit configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: DefaultMaxFileSize,
		AllowedExtensions: []string{
			".txt", ".md", ".py", ".js", ".json",
			".yaml", ".yml", ".csv", ".xml", ".html", ".css",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file,
// then a .env file in the working directory, then process environment
// variables. Empty path falls back to ~/.fsgate/config.yaml. A missing
// file at either location returns defaults; invalid YAML is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".fsgate", "config.yaml")
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// .env populates the environment without clobbering variables the
	// operator already exported.
	_ = gotenv.Load()

	cfg.applyEnv()
	cfg.normalizeExtensions()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAllowedDirectories); v != "" {
		c.AllowedDirectories = splitList(v)
	}
	if v := os.Getenv(EnvMaxFileSize); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxFileSize = n
		}
	}
	if v := os.Getenv(EnvAllowedExtensions); v != "" {
		c.AllowedExtensions = splitList(v)
	}
	if v := os.Getenv(EnvAuditLog); v != "" {
		c.AuditLogPath = v
	}
}

// normalizeExtensions lowercases every entry and guarantees a leading dot.
// The empty string survives as the explicit no-extension sentinel.
func (c *Config) normalizeExtensions() {
	out := make([]string, 0, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	c.AllowedExtensions = out
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
