// file: cmd/discogs.go
// version: 2.0.0
// guid: 5b6c7d8e-9f0a-1b2c-3d4e-5f6a7b8c9d0e

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/discogs"
	"github.com/cratekeeper/cratekeeper/internal/importer"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

// discogsCmd represents the discogs sync command
var discogsCmd = &cobra.Command{
	Use:   "discogs-sync",
	Short: "Import a Discogs collection",
	Long: `Fetch the configured user's Discogs collection and run it through the
import pipeline. Requires a Discogs token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := config.AppConfig.Discogs.Token
		if token == "" {
			return fmt.Errorf("a Discogs token is required (--discogs-token or config)")
		}
		username := config.AppConfig.Discogs.Username
		if username == "" {
			return fmt.Errorf("a Discogs username is required (--discogs-username or config)")
		}
		mode, err := parseModeFlag(cmd)
		if err != nil {
			return err
		}

		client := discogs.NewClient(token)
		fmt.Printf("Fetching Discogs collection for %s...\n", username)
		records, err := client.FetchCollection(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("discogs fetch failed: %w", err)
		}
		fmt.Printf("Fetched %d releases\n", len(records))

		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		result, err := importer.New(store).Run(cmd.Context(), models.SourceDiscogs, records,
			importer.Options{Mode: mode})
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}
