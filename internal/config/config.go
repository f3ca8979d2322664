package config

// Config is the root application configuration.
type Config struct {
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
	UI   UIConfig   `yaml:"ui"`
}

// DataConfig locates the local database and the syllabus catalog.
type DataConfig struct {
	Dir         string `yaml:"dir"          env:"STUDYHUB_DATA_DIR"`
	DBFile      string `yaml:"db_file"      env:"STUDYHUB_DB_FILE"  env-default:"studyhub.db"`
	CatalogPath string `yaml:"catalog_path" env:"STUDYHUB_CATALOG"`
}

// LogConfig holds logging settings. The TUI owns the terminal, so logs go to a file.
type LogConfig struct {
	Level  string `yaml:"level"  env:"STUDYHUB_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"STUDYHUB_LOG_FORMAT" env-default:"json"`
	File   string `yaml:"file"   env:"STUDYHUB_LOG_FILE"   env-default:"studyhub.log"`
}

// UIConfig holds presentation settings. An empty UserName greets the
// catalog's user.
type UIConfig struct {
	UserName     string `yaml:"user_name"     env:"STUDYHUB_USER_NAME"`
	RecentLimit  int    `yaml:"recent_limit"  env:"STUDYHUB_RECENT_LIMIT"  env-default:"3"`
	SuggestLimit int    `yaml:"suggest_limit" env:"STUDYHUB_SUGGEST_LIMIT" env-default:"3"`
}
