package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Storage.Backend != "sqlite" || !strings.HasSuffix(cfg.Storage.Path, "taskboard.db") {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != "" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.UI.Theme != "dark" {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromMissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE_BACKEND", "memory")
	t.Setenv("TASKBOARD_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "memory" || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.UI.Theme != "dark" {
		t.Fatalf("default theme lost: %+v", cfg.UI)
	}
}

func TestLoadFromFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[storage]
backend = "file"
path = "/tmp/taskboard/store.json"

[log]
level = "warn"
file = "/tmp/taskboard/taskboard.log"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKBOARD_UI_THEME", "light")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.Path != "/tmp/taskboard/store.json" {
		t.Fatalf("file values not applied: %+v", cfg.Storage)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/taskboard/taskboard.log" {
		t.Fatalf("log values not applied: %+v", cfg.Log)
	}
	if cfg.UI.Theme != "light" {
		t.Fatalf("env override not applied: %+v", cfg.UI)
	}
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE_BACKEND", "redis")
	if _, err := LoadFrom(""); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	t.Setenv("TASKBOARD_STORAGE_BACKEND", "memory")
	t.Setenv("TASKBOARD_LOG_LEVEL", "chatty")
	if _, err := LoadFrom(""); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Storage.Backend = "file"
	cfg.Storage.Path = "/data/store.json"
	cfg.Log.Level = "debug"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := expandPath("~/tasks.db"); got != filepath.Join(home, "tasks.db") {
		t.Fatalf("expandPath = %q", got)
	}
	if got := expandPath("/abs/tasks.db"); got != "/abs/tasks.db" {
		t.Fatalf("expandPath changed absolute path: %q", got)
	}
}
