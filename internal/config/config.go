// Package config loads taskboard settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

const appDirName = "taskboard"

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend string `toml:"backend" env:"TASKBOARD_STORAGE_BACKEND"`
	Path    string `toml:"path" env:"TASKBOARD_STORAGE_PATH"`
}

// LogConfig controls the debug log. An empty File disables logging, since
// the terminal UI owns stdout.
type LogConfig struct {
	Level string `toml:"level" env:"TASKBOARD_LOG_LEVEL"`
	File  string `toml:"file" env:"TASKBOARD_LOG_FILE"`
}

// UIConfig.Theme is a glamour style name used for markdown previews.
type UIConfig struct {
	Theme string `toml:"theme" env:"TASKBOARD_UI_THEME"`
}

func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDirName)
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func Default() Config {
	dir := Dir()
	return Config{
		Storage: StorageConfig{
			Backend: string(storage.BackendSQLite),
			Path:    filepath.Join(dir, "taskboard.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// LoadFrom starts from Default, applies the file at path when it exists,
// then applies environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	trimmed := strings.TrimSpace(path)
	haveFile := false
	if trimmed != "" {
		_, err := os.Stat(trimmed)
		switch {
		case err == nil:
			haveFile = true
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("stat config %s: %w", trimmed, err)
		}
	}

	if haveFile {
		// ReadConfig applies the environment after the file.
		if err := cleanenv.ReadConfig(trimmed, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", trimmed, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	backend := storage.Backend(c.Storage.Backend)
	if !backend.IsValid() {
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if backend != storage.BackendMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("config: storage path is required")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SaveTo writes c as TOML, creating parent directories.
func (c Config) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
