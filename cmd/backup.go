// file: cmd/backup.go
// version: 2.0.0
// guid: 1b2c3d4e-5f6a-7b8c-9d0e-1f2a3b4c5d6e

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratekeeper/cratekeeper/internal/backup"
	"github.com/cratekeeper/cratekeeper/internal/config"
)

var (
	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Back up and restore the collection database",
	}

	backupCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a compressed database snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := backupFlags(cmd)
			info, err := backup.Create(config.AppConfig.DatabasePath, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Backup created: %s (%d bytes)\n", info.Path, info.Size)
			fmt.Printf("SHA256: %s\n", info.Checksum)
			return nil
		},
	}

	backupListCmd = &cobra.Command{
		Use:   "list",
		Short: "List available backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := backupFlags(cmd)
			backups, err := backup.List(cfg.BackupDir)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println("No backups found.")
				return nil
			}
			for _, b := range backups {
				fmt.Printf("%s  %10d bytes  %s\n",
					b.CreatedAt.Format("2006-01-02 15:04:05"), b.Size, b.Filename)
			}
			return nil
		},
	}

	backupRestoreCmd = &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := backup.Restore(args[0], config.AppConfig.DatabasePath); err != nil {
				return err
			}
			fmt.Printf("Restored %s to %s\n", args[0], config.AppConfig.DatabasePath)
			return nil
		},
	}
)

func init() {
	backupCmd.PersistentFlags().String("backup-dir", "backups", "directory for database backups")
	backupCmd.PersistentFlags().Int("max-backups", 10, "backups to keep when pruning")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func backupFlags(cmd *cobra.Command) backup.Config {
	cfg := backup.DefaultConfig()
	if dir, _ := cmd.Flags().GetString("backup-dir"); dir != "" {
		cfg.BackupDir = dir
	}
	if max, _ := cmd.Flags().GetInt("max-backups"); max > 0 {
		cfg.MaxBackups = max
	}
	return cfg
}
