// file: cmd/thousand.go
// version: 2.0.0
// guid: 6c7d8e9f-0a1b-2c3d-4e5f-6a7b8c9d0e1f

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/enrich"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

var (
	thousandCmd = &cobra.Command{
		Use:   "1001",
		Short: "Work with the 1001 Albums You Must Hear list",
	}

	thousandLoadCmd = &cobra.Command{
		Use:   "load <list.json>",
		Short: "Load the reference list from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read list: %w", err)
			}
			var entries []models.ThousandEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("failed to parse list: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			svc := enrich.NewService(store, config.AppConfig.Import.ScoreThreshold)
			if err := svc.LoadThousandList(cmd.Context(), entries); err != nil {
				return err
			}
			fmt.Printf("Loaded %d entries\n", len(entries))
			return nil
		},
	}

	thousandMatchCmd = &cobra.Command{
		Use:   "match",
		Short: "Match the collection against the list and queue reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			svc := enrich.NewService(store, config.AppConfig.Import.ScoreThreshold)
			result, err := svc.MatchThousand(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Scanned %d albums, queued %d reviews\n", result.Scanned, result.Matched)
			for _, r := range result.Reviews {
				fmt.Printf("  album %d -> entry %d (%d%% confidence)\n",
					r.AlbumID, r.EntryID, r.Confidence)
			}
			return nil
		},
	}
)

func init() {
	thousandCmd.AddCommand(thousandLoadCmd)
	thousandCmd.AddCommand(thousandMatchCmd)
}
