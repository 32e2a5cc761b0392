package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// Command options
var (
	rebuildCatalog bool
)

// newSyncCmd creates a new command for reconciling images with the catalog
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the images directory with gallery.json",
		Long: `Sync scans the images directory, generates any missing square thumbnails and
brings gallery.json up to date. Metadata already edited in the catalog is never
overwritten; only new images are added and missing thumbnail paths backfilled.

With --rebuild the catalog is reconstructed from the images currently on disk:
entries whose files vanished are dropped and ids are renumbered 1..N by image
path.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			runSync(rebuildCatalog)
		},
	}

	cmd.Flags().BoolVarP(&rebuildCatalog, "rebuild", "r", false, "Rebuild the catalog from the images on disk, pruning and renumbering")

	return cmd
}

// runSync reconciles and prints a summary. A catalog write failure is the
// only fatal outcome; skipped corrupt images are reported but exit 0.
func runSync(rebuild bool) {
	report, err := services.Sync(rebuild)
	if err != nil {
		log.Fatalf("Failed to save catalog: %v", err)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Source images: %d\n", len(report.Results))
	fmt.Printf("  Thumbnails created: %d\n", report.ThumbsCreated())
	fmt.Printf("  Images skipped on errors: %d\n", report.Failed())
	if rebuild {
		fmt.Printf("  Entries pruned: %d\n", report.Pruned)
	} else {
		fmt.Printf("  New entries: %d\n", report.NewEntries)
		fmt.Printf("  Thumbnail paths backfilled: %d\n", report.Updated)
	}
	if report.Saved {
		fmt.Printf("  Catalog updated\n")
	} else {
		fmt.Printf("  Catalog unchanged\n")
	}
}
