package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAllowedDirectories, EnvMaxFileSize, EnvAllowedExtensions, EnvAuditLog} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxFileSize != 10*1024*1024 {
		t.Errorf("expected 10MiB default, got %d", cfg.MaxFileSize)
	}
	if len(cfg.AllowedDirectories) != 0 {
		t.Errorf("no directories may be allowed by default, got %v", cfg.AllowedDirectories)
	}
	if len(cfg.AllowedExtensions) == 0 {
		t.Error("expected default extension allow-list")
	}
	for _, ext := range cfg.AllowedExtensions {
		if ext == "" || ext[0] != '.' {
			t.Errorf("default extension %q must carry a leading dot", ext)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must fall back to defaults, got %v", err)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("expected default max size, got %d", cfg.MaxFileSize)
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
allowed_directories:
  - /data
  - /srv/shared
max_file_size: 2048
allowed_extensions: [".txt", "MD"]
audit_log: /var/log/fsgate/access.jsonl
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.AllowedDirectories, []string{"/data", "/srv/shared"}) {
		t.Errorf("unexpected directories: %v", cfg.AllowedDirectories)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("expected 2048, got %d", cfg.MaxFileSize)
	}
	if !reflect.DeepEqual(cfg.AllowedExtensions, []string{".txt", ".md"}) {
		t.Errorf("extensions must be lowercased with leading dot, got %v", cfg.AllowedExtensions)
	}
	if cfg.AuditLogPath != "/var/log/fsgate/access.jsonl" {
		t.Errorf("unexpected audit log path %q", cfg.AuditLogPath)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("allowed_directories: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("invalid YAML must be an error, not silent defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_file_size: 2048\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAllowedDirectories, " /data , /srv/shared ")
	t.Setenv(EnvMaxFileSize, "4096")
	t.Setenv(EnvAllowedExtensions, "txt,.MD")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.AllowedDirectories, []string{"/data", "/srv/shared"}) {
		t.Errorf("env directories must override file, got %v", cfg.AllowedDirectories)
	}
	if cfg.MaxFileSize != 4096 {
		t.Errorf("env max size must override file, got %d", cfg.MaxFileSize)
	}
	if !reflect.DeepEqual(cfg.AllowedExtensions, []string{".txt", ".md"}) {
		t.Errorf("env extensions must be normalized, got %v", cfg.AllowedExtensions)
	}
}

func TestEnvMaxFileSizeIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxFileSize, "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("garbage env value must keep default, got %d", cfg.MaxFileSize)
	}
}
