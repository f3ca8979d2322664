package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at temp dirs and clears STUDYHUB_ vars.
func isolate(t *testing.T) (dataHome, configHome string) {
	t.Helper()
	for _, v := range []string{
		"STUDYHUB_CONFIG", "STUDYHUB_DATA_DIR", "STUDYHUB_DB_FILE", "STUDYHUB_CATALOG",
		"STUDYHUB_LOG_LEVEL", "STUDYHUB_LOG_FORMAT", "STUDYHUB_LOG_FILE",
		"STUDYHUB_USER_NAME", "STUDYHUB_RECENT_LIMIT", "STUDYHUB_SUGGEST_LIMIT",
	} {
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
	dataHome = t.TempDir()
	configHome = t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	return dataHome, configHome
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataHome, _ := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataHome, "studyhub"), cfg.Data.Dir)
	assert.DirExists(t, cfg.Data.Dir)
	assert.Equal(t, filepath.Join(dataHome, "studyhub", "studyhub.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join(dataHome, "studyhub", "studyhub.log"), cfg.LogPath())
	assert.Empty(t, cfg.Data.CatalogPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.UI.UserName, "the catalog user name is used when unset")
	assert.Equal(t, 3, cfg.UI.RecentLimit)
	assert.Equal(t, 3, cfg.UI.SuggestLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("STUDYHUB_DATA_DIR", dir)
	t.Setenv("STUDYHUB_USER_NAME", "Sarah")
	t.Setenv("STUDYHUB_LOG_LEVEL", "debug")
	t.Setenv("STUDYHUB_RECENT_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, "Sarah", cfg.UI.UserName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.UI.RecentLimit)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeYAML(t, dir, `
data:
  dir: "`+dir+`"
  db_file: "hub.db"
log:
  level: "warn"
  format: "console"
  file: "/tmp/hub.log"
ui:
  user_name: "Amir"
  suggest_limit: 4
`)
	t.Setenv("STUDYHUB_CONFIG", path)
	t.Setenv("STUDYHUB_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "hub.db"), cfg.DBPath())
	assert.Equal(t, "/tmp/hub.log", cfg.LogPath())
	assert.Equal(t, "error", cfg.Log.Level, "env wins over yaml")
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "Amir", cfg.UI.UserName)
	assert.Equal(t, 4, cfg.UI.SuggestLimit)
	assert.Equal(t, 3, cfg.UI.RecentLimit, "default fills missing yaml keys")
}

func TestLoad_XDGConfigFile(t *testing.T) {
	_, configHome := isolate(t)
	writeYAML(t, filepath.Join(configHome, "studyhub"), "ui:\n  user_name: \"Lee\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Lee", cfg.UI.UserName)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	t.Setenv("STUDYHUB_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Data: DataConfig{DBFile: "studyhub.db"},
			Log:  LogConfig{Level: "info", Format: "json"},
			UI:   UIConfig{RecentLimit: 3, SuggestLimit: 3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"empty db file", func(c *Config) { c.Data.DBFile = "" }, true},
		{"zero recent limit", func(c *Config) { c.UI.RecentLimit = 0 }, true},
		{"negative suggest limit", func(c *Config) { c.UI.SuggestLimit = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
