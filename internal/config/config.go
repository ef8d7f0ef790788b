// Package config loads client settings from an optional YAML file and
// GABELGURU_* environment variables. Environment values win over the file,
// and the file wins over defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
	Audio   AudioConfig   `yaml:"audio"`
}

type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	LogCalls  bool   `yaml:"log_calls"`
}

type AuthConfig struct {
	// Token, when set, overrides the token file.
	Token     string `yaml:"token"`
	TokenFile string `yaml:"token_file"`
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type UIConfig struct {
	Theme string `yaml:"theme"` // "dark" or "light"
	// Pixel size of one terminal cell; gesture thresholds are specified in
	// pixels and mouse events arrive in cells.
	CellWidthPx  int `yaml:"cell_width_px"`
	CellHeightPx int `yaml:"cell_height_px"`
}

type AudioConfig struct {
	// Player is an external command that receives the speech URL as its
	// last argument, e.g. "mpv --no-video". Empty disables spoken replies.
	Player string `yaml:"player"`
}

// Dir returns the per-user state directory (~/.gabelguru).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gabelguru"), nil
}

// Default returns a Config with sensible defaults rooted at dir.
func Default(dir string) Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:3000/api",
			TimeoutMs: 10000,
		},
		Auth: AuthConfig{
			TokenFile: filepath.Join(dir, "token"),
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "cache.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dir, "gabelguru.log"),
		},
		UI: UIConfig{
			Theme:        "dark",
			CellWidthPx:  8,
			CellHeightPx: 16,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if it
// exists) and environment overrides. An empty path means dir/config.yaml.
func Load(dir, path string) (Config, error) {
	cfg := Default(dir)
	if path == "" {
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GABELGURU_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("GABELGURU_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutMs = n
		}
	}
	if v := os.Getenv("GABELGURU_LOG_CALLS"); v != "" {
		cfg.API.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GABELGURU_TOKEN"); v != "" {
		cfg.Auth.Token = v
	}
	if v := os.Getenv("GABELGURU_TOKEN_FILE"); v != "" {
		cfg.Auth.TokenFile = v
	}
	if v := os.Getenv("GABELGURU_CACHE"); v != "" {
		if v == "off" {
			cfg.Cache.Enabled = false
		} else {
			cfg.Cache.Path = v
		}
	}
	if v := os.Getenv("GABELGURU_LOG"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("GABELGURU_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GABELGURU_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("GABELGURU_PLAYER"); v != "" {
		cfg.Audio.Player = v
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.TimeoutMs <= 0 {
		return fmt.Errorf("api.timeout_ms must be positive, got %d", c.API.TimeoutMs)
	}
	if c.UI.CellWidthPx <= 0 || c.UI.CellHeightPx <= 0 {
		return errors.New("ui.cell_width_px and ui.cell_height_px must be positive")
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be dark or light, got %q", c.UI.Theme)
	}
	return nil
}
