// file: cmd/import.go
// version: 2.0.0
// guid: 4a5b6c7d-8e9f-0a1b-2c3d-4e5f6a7b8c9d

package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cratekeeper/cratekeeper/internal/clz"
	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/importer"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <export.xml>",
	Short: "Import a CLZ Music export",
	Long: `Import a CLZ Music XML export into the collection. Divergent field
values are queued as conflicts for review instead of being overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseModeFlag(cmd)
		if err != nil {
			return err
		}
		preview, _ := cmd.Flags().GetBool("preview")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open export: %w", err)
		}
		defer f.Close()

		records, err := clz.Parse(f)
		if err != nil {
			return fmt.Errorf("failed to parse export: %w", err)
		}
		fmt.Printf("Parsed %d albums from %s\n", len(records), args[0])

		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		imp := importer.New(store)

		if preview {
			p, err := imp.Preview(cmd.Context(), models.SourceCLZ, records, mode)
			if err != nil {
				return err
			}
			return printPreview(p)
		}

		bar := progressbar.Default(int64(len(records)), "importing")
		result, err := imp.Run(cmd.Context(), models.SourceCLZ, records, importer.Options{
			Mode: mode,
			Progress: func(processed, total int) {
				bar.Set(processed)
			},
		})
		if err != nil {
			return err
		}
		bar.Finish()

		printResult(result)
		return nil
	},
}

func init() {
	importCmd.Flags().String("mode", "", "update mode: update_all or update_missing_only (default from config)")
	importCmd.Flags().Bool("preview", false, "show what the import would do without writing")
	discogsCmd.Flags().String("mode", "", "update mode: update_all or update_missing_only (default from config)")
}

func parseModeFlag(cmd *cobra.Command) (models.UpdateMode, error) {
	raw, _ := cmd.Flags().GetString("mode")
	if raw == "" {
		raw = config.AppConfig.Import.Mode
	}
	if raw == "" {
		raw = string(models.UpdateAll)
	}
	mode := models.UpdateMode(raw)
	switch mode {
	case models.UpdateAll, models.UpdateMissingOnly:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be update_all or update_missing_only", raw)
	}
}

func printPreview(p *importer.Preview) error {
	fmt.Printf("Preview: %d new, %d updates, %d conflicts, %d skips\n",
		p.New, p.Updates, p.Conflicts, p.Skips)
	for _, rec := range p.Records {
		fmt.Printf("  %-10s %s / %s", rec.Action, rec.Artist, rec.Title)
		if len(rec.ConflictFields) > 0 {
			fmt.Printf("  (conflicts: %v)", rec.ConflictFields)
		}
		fmt.Println()
	}
	return nil
}

func printResult(result *models.ImportResult) {
	fmt.Printf("\nImport complete: %s\n", result.Message)
	fmt.Printf("  New albums:      %d\n", result.NewAlbums)
	fmt.Printf("  Updated albums:  %d\n", result.UpdatedAlbums)
	fmt.Printf("  Conflicts:       %d\n", result.ConflictsDetected)
	fmt.Printf("  Unchanged:       %d\n", result.SkippedAlbums)
	if len(result.Errors) > 0 {
		fmt.Printf("  Failed records:  %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    %s: %s\n", e.Album, e.Error)
		}
	}
	if result.ConflictsDetected > 0 {
		fmt.Println("\nRun the server and review pending conflicts before re-importing.")
	}
}
