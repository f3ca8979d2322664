package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

const appName = "studyhub"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is STUDYHUB_CONFIG when set (and must then exist), otherwise
// $XDG_CONFIG_HOME/studyhub/config.yaml when present. Without a file,
// configuration comes from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("STUDYHUB_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		dir, err := configDir()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// DBPath is the absolute path of the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.Data.Dir, c.Data.DBFile)
}

// LogPath is the absolute path of the log file.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Data.Dir, c.Log.File)
}

// resolvePaths fills in the data directory and makes sure it exists.
func (c *Config) resolvePaths() error {
	if c.Data.Dir == "" {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		c.Data.Dir = dir
	}
	if err := os.MkdirAll(c.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// dataDir uses the XDG data directory or falls back to the home directory
func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, appName), nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}
