// file: cmd/root.go
// version: 2.0.0
// guid: 2e3f4a5b-6c7d-8e9f-0a1b-2c3d4e5f6a7b

// Package cmd wires the CLI: serve, import, discogs sync, the 1001-albums
// helpers and diagnostics.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/database"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cratekeeper",
	Short: "Manage a record collection with conflict-aware imports",
	Long: `Cratekeeper keeps a physical record collection in one place. It imports
CLZ Music exports and Discogs collections, detects conflicting field values
instead of silently overwriting them, and tracks progress against the
1001 Albums You Must Hear list.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yaml next to the database)")
	rootCmd.PersistentFlags().String("db", "cratekeeper.db", "path to the SQLite database")
	rootCmd.PersistentFlags().String("discogs-token", "", "Discogs personal access token")
	rootCmd.PersistentFlags().String("discogs-username", "", "Discogs username to sync from")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("discogs.token", rootCmd.PersistentFlags().Lookup("discogs-token"))
	viper.BindPFlag("discogs.username", rootCmd.PersistentFlags().Lookup("discogs-username"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(discogsCmd)
	rootCmd.AddCommand(thousandCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
		}
	}

	viper.SetEnvPrefix("CRATEKEEPER")
	viper.AutomaticEnv()

	config.InitConfig()

	// The YAML config next to the database fills in anything flags and
	// environment left unset.
	if err := config.LoadConfigFromFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config file: %v\n", err)
	}
}

// openStore ensures the database directory exists and opens the store.
func openStore() (database.Store, error) {
	path := config.AppConfig.DatabasePath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return database.NewSQLiteStore(path)
}
