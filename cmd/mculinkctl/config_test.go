package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadClientConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadClientConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != defaultClientConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadClientConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mculinkctl.toml")
	content := `
identity = "bench-mcu"
exec = "/usr/local/bin/mculinkd"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadClientConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Identity != "bench-mcu" {
		t.Fatalf("unexpected identity: %q", cfg.Identity)
	}
	if cfg.Exec != "/usr/local/bin/mculinkd" {
		t.Fatalf("unexpected exec path: %q", cfg.Exec)
	}
}

func TestLoadClientConfigPartialOverrideKeepsOtherDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mculinkctl.toml")
	if err := os.WriteFile(path, []byte(`identity = "only-this"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadClientConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Identity != "only-this" {
		t.Fatalf("unexpected identity: %q", cfg.Identity)
	}
	if cfg.Exec != "" {
		t.Fatalf("expected exec to remain unset, got %q", cfg.Exec)
	}
}
