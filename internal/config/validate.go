package config

import (
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// Validate checks the loaded values. Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	if c.Data.DBFile == "" {
		return fmt.Errorf("data.db_file must not be empty")
	}
	if c.UI.RecentLimit <= 0 {
		return fmt.Errorf("ui.recent_limit must be > 0 (got %d)", c.UI.RecentLimit)
	}
	if c.UI.SuggestLimit <= 0 {
		return fmt.Errorf("ui.suggest_limit must be > 0 (got %d)", c.UI.SuggestLimit)
	}
	return nil
}
