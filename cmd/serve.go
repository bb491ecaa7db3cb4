// file: cmd/serve.go
// version: 2.0.0
// guid: 3f4a5b6c-7d8e-9f0a-1b2c-3d4e5f6a7b8c

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cratekeeper/cratekeeper/internal/clz"
	"github.com/cratekeeper/cratekeeper/internal/config"
	"github.com/cratekeeper/cratekeeper/internal/discogs"
	"github.com/cratekeeper/cratekeeper/internal/enrich"
	"github.com/cratekeeper/cratekeeper/internal/importer"
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/server"
	"github.com/cratekeeper/cratekeeper/internal/watcher"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the HTTP API. When an import drop directory is configured, CLZ
exports placed there are imported automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		fmt.Printf("Using database: %s\n", config.AppConfig.DatabasePath)

		imp := importer.New(store)
		deps := server.Deps{
			Store:    store,
			Importer: imp,
			Enricher: enrich.NewService(store, config.AppConfig.Import.ScoreThreshold),
		}
		if config.AppConfig.Discogs.Token != "" {
			deps.Discogs = discogs.NewClient(config.AppConfig.Discogs.Token)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if dropDir := config.AppConfig.ImportDropDir; dropDir != "" {
			w := watcher.New(func(path string) {
				importDroppedFile(ctx, imp, path)
			}, config.AppConfig.Import.WatchDebounce)
			if err := w.Start(dropDir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dropDir, err)
			}
			defer w.Stop()
			fmt.Printf("Watching for CLZ exports in: %s\n", dropDir)
		}

		srv := server.New(deps, config.AppConfig.Discogs.Username,
			config.AppConfig.RateLimit.RequestsPerMinute, config.AppConfig.RateLimit.Burst)

		addr := config.AppConfig.ListenAddr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		return srv.Start(ctx, server.Config{
			Addr:         addr,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config, e.g. :8080)")
}

// importDroppedFile runs one watched file through the standard import
// pipeline. Errors are logged, not fatal; the server keeps running.
func importDroppedFile(ctx context.Context, imp *importer.Importer, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[ERROR] drop import: failed to open %s: %v", path, err)
		return
	}
	defer f.Close()

	records, err := clz.Parse(f)
	if err != nil {
		log.Printf("[ERROR] drop import: failed to parse %s: %v", path, err)
		return
	}

	mode := models.UpdateMode(config.AppConfig.Import.Mode)
	result, err := imp.Run(ctx, models.SourceCLZ, records, importer.Options{Mode: mode})
	if err != nil {
		log.Printf("[ERROR] drop import: %s failed: %v", path, err)
		return
	}
	log.Printf("[INFO] drop import: %s -> %d new, %d updated, %d conflicts",
		path, result.NewAlbums, result.UpdatedAlbums, result.ConflictsDetected)
}
