// file: internal/config/persistence.go
// version: 2.0.0
// guid: 8c9d0e1f-2a3b-4c5d-6e7f-8a9b0c1d2e3f

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of the on-disk config file.
type fileConfig struct {
	DatabasePath  string `yaml:"database_path,omitempty"`
	ListenAddr    string `yaml:"listen_addr,omitempty"`
	ImportDropDir string `yaml:"import_drop_dir,omitempty"`
	DefaultFolder string `yaml:"default_folder,omitempty"`
	Discogs       struct {
		Token    string `yaml:"token,omitempty"`
		Username string `yaml:"username,omitempty"`
	} `yaml:"discogs,omitempty"`
	Import struct {
		Mode           string  `yaml:"mode,omitempty"`
		WatchDebounce  string  `yaml:"watch_debounce,omitempty"`
		ScoreThreshold float64 `yaml:"score_threshold,omitempty"`
	} `yaml:"import,omitempty"`
}

// ConfigFilePath returns where the config file lives, next to the database.
func ConfigFilePath() string {
	if AppConfig.DatabasePath != "" {
		return filepath.Join(filepath.Dir(AppConfig.DatabasePath), "config.yaml")
	}
	return "config.yaml"
}

// LoadConfigFromFile merges the YAML config file into AppConfig. A missing
// file is not an error.
func LoadConfigFromFile() error {
	data, err := os.ReadFile(ConfigFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.DatabasePath != "" {
		AppConfig.DatabasePath = fc.DatabasePath
	}
	if fc.ListenAddr != "" {
		AppConfig.ListenAddr = fc.ListenAddr
	}
	if fc.ImportDropDir != "" {
		AppConfig.ImportDropDir = fc.ImportDropDir
	}
	if fc.DefaultFolder != "" {
		AppConfig.DefaultFolder = fc.DefaultFolder
	}
	if fc.Discogs.Token != "" {
		AppConfig.Discogs.Token = fc.Discogs.Token
	}
	if fc.Discogs.Username != "" {
		AppConfig.Discogs.Username = fc.Discogs.Username
	}
	if fc.Import.Mode != "" {
		AppConfig.Import.Mode = fc.Import.Mode
	}
	if fc.Import.WatchDebounce != "" {
		if d, err := time.ParseDuration(fc.Import.WatchDebounce); err == nil {
			AppConfig.Import.WatchDebounce = d
		}
	}
	if fc.Import.ScoreThreshold > 0 {
		AppConfig.Import.ScoreThreshold = fc.Import.ScoreThreshold
	}
	return nil
}

// SaveConfigToFile writes the current AppConfig to the YAML config file.
func SaveConfigToFile() error {
	var fc fileConfig
	fc.DatabasePath = AppConfig.DatabasePath
	fc.ListenAddr = AppConfig.ListenAddr
	fc.ImportDropDir = AppConfig.ImportDropDir
	fc.DefaultFolder = AppConfig.DefaultFolder
	fc.Discogs.Token = AppConfig.Discogs.Token
	fc.Discogs.Username = AppConfig.Discogs.Username
	fc.Import.Mode = AppConfig.Import.Mode
	if AppConfig.Import.WatchDebounce > 0 {
		fc.Import.WatchDebounce = AppConfig.Import.WatchDebounce.String()
	}
	fc.Import.ScoreThreshold = AppConfig.Import.ScoreThreshold

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := ConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
