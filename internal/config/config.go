package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	DataDir       string             `koanf:"data_dir"`
	Storage       StorageConfig      `koanf:"storage"`
	Notifications NotificationConfig `koanf:"notifications"`
	Log           LogConfig          `koanf:"log"`
}

type StorageConfig struct {
	Backend string `koanf:"backend"`
}

type NotificationConfig struct {
	Enabled bool `koanf:"enabled"`
	Desktop bool `koanf:"desktop"`
	Sound   bool `koanf:"sound"`
	Buffer  int  `koanf:"buffer"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Load layers defaults, an optional YAML file and ZEND_* env overrides
// (ZEND_STORAGE_BACKEND=sqlite maps to storage.backend).
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("ZEND_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "ZEND_"))
		// data_dir is a top-level key with an underscore in it, so the
		// generic underscore-to-delimiter mapping must not touch it.
		if key == "data_dir" {
			return key
		}
		return strings.ReplaceAll(key, "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend: %s (supported: %s, %s)", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Notifications.Buffer <= 0 {
		return fmt.Errorf("notifications.buffer must be positive")
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
