// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DatabasePath  string
	ListenAddr    string
	ImportDropDir string
	DefaultFolder string
	Discogs       struct {
		Token    string
		Username string
	}
	Import struct {
		Mode           string // "update_all" or "update_missing_only"
		WatchDebounce  time.Duration
		ScoreThreshold float64
	}
	RateLimit struct {
		RequestsPerMinute int
		Burst             int
	}
}

var AppConfig Config

// InitConfig initializes the application configuration from viper, which has
// already merged flags, the config file and environment variables.
func InitConfig() {
	viper.SetDefault("database_path", "cratekeeper.db")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("default_folder", "All Albums")
	viper.SetDefault("import.mode", "update_all")
	viper.SetDefault("import.watch_debounce", "5s")
	viper.SetDefault("import.score_threshold", 0.70)
	viper.SetDefault("rate_limit.requests_per_minute", 120)
	viper.SetDefault("rate_limit.burst", 30)

	AppConfig = Config{
		DatabasePath:  viper.GetString("database_path"),
		ListenAddr:    viper.GetString("listen_addr"),
		ImportDropDir: viper.GetString("import_drop_dir"),
		DefaultFolder: viper.GetString("default_folder"),
	}
	AppConfig.Discogs.Token = viper.GetString("discogs.token")
	AppConfig.Discogs.Username = viper.GetString("discogs.username")
	AppConfig.Import.Mode = viper.GetString("import.mode")
	AppConfig.Import.WatchDebounce = viper.GetDuration("import.watch_debounce")
	AppConfig.Import.ScoreThreshold = viper.GetFloat64("import.score_threshold")
	AppConfig.RateLimit.RequestsPerMinute = viper.GetInt("rate_limit.requests_per_minute")
	AppConfig.RateLimit.Burst = viper.GetInt("rate_limit.burst")
}
