// file: cmd/diagnostics.go
// version: 2.0.0
// guid: 7d8e9f0a-1b2c-3d4e-5f6a-7b8c9d0e1f2a

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting and repairing the collection database.",
	}

	cleanupCmd = &cobra.Command{
		Use:   "cleanup-invalid",
		Short: "Remove albums with no artist or title",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return runCleanupInvalidAlbums(cmd, force, dryRun)
		},
	}

	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Inspect stored album records",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runDiagnosticsQuery(cmd, limit)
		},
	}
)

func init() {
	cleanupCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	cleanupCmd.Flags().Bool("dry-run", false, "List invalid records without deleting")

	queryCmd.Flags().Int("limit", 5, "Number of records to display")

	diagnosticsCmd.AddCommand(cleanupCmd)
	diagnosticsCmd.AddCommand(queryCmd)
}

func runCleanupInvalidAlbums(cmd *cobra.Command, force, dryRun bool) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	fmt.Printf("Inspecting albums in %s\n", config.AppConfig.DatabasePath)

	albums, err := store.AllAlbums(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch albums: %w", err)
	}

	invalid := make([]models.Album, 0)
	for _, album := range albums {
		if strings.TrimSpace(album.Artist) == "" || strings.TrimSpace(album.Title) == "" {
			invalid = append(invalid, album)
		}
	}

	if len(invalid) == 0 {
		fmt.Println("No invalid album records detected.")
		return nil
	}

	fmt.Printf("Found %d invalid records:\n", len(invalid))
	for i, album := range invalid {
		fmt.Printf("%2d. ID: %d\n", i+1, album.ID)
		fmt.Printf("    Artist: %q\n", album.Artist)
		fmt.Printf("    Title:  %q\n", album.Title)
	}

	if dryRun {
		fmt.Println("Dry run enabled; no deletions were performed.")
		return nil
	}

	if !force {
		confirmed, err := promptYesNo(fmt.Sprintf("Delete %d records", len(invalid)))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted. No records deleted.")
			return nil
		}
	}

	deleted := 0
	for _, album := range invalid {
		if err := store.DeleteAlbum(cmd.Context(), album.ID); err != nil {
			fmt.Printf("Failed to delete %d: %v\n", album.ID, err)
			continue
		}
		deleted++
	}

	fmt.Printf("Deleted %d invalid records.\n", deleted)
	return nil
}

func runDiagnosticsQuery(cmd *cobra.Command, limit int) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	resp, err := store.ListAlbums(cmd.Context(), models.AlbumListRequest{Page: 1, Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to fetch albums: %w", err)
	}
	if len(resp.Albums) == 0 {
		fmt.Println("No albums found.")
		return nil
	}

	for i, album := range resp.Albums {
		fmt.Printf("%2d. ID: %d\n", i+1, album.ID)
		fmt.Printf("    Artist: %s\n", album.Artist)
		fmt.Printf("    Title:  %s\n", album.Title)
		fmt.Printf("    Format: %s  Year: %s\n", album.Format, album.Year)
		if album.DiscogsReleaseID != "" {
			fmt.Printf("    Discogs: %s\n", album.DiscogsReleaseID)
		}
		if album.ClzAlbumID != "" {
			fmt.Printf("    CLZ: %s\n", album.ClzAlbumID)
		}
		fmt.Println("---")
	}
	fmt.Printf("Showing %d of %d albums.\n", len(resp.Albums), resp.Total)

	return nil
}

func promptYesNo(action string) (bool, error) {
	fmt.Printf("%s? Type 'yes' to confirm: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes", nil
}
