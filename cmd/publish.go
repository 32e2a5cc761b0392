package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// Command options
var (
	publishPrefix string
)

// newPublishCmd creates a new command for publishing the gallery to a bucket
func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the images directory and catalog to the bucket",
		Long: `Publish uploads the images directory, including thumbnails and gallery.json,
to the configured Google Cloud Storage bucket. Objects whose size already
matches the local file are skipped.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			publish()
		},
	}

	cmd.Flags().StringVar(&publishPrefix, "prefix", "", "Object path prefix inside the bucket")

	return cmd
}

// publish uploads the gallery and prints a summary
func publish() {
	report, err := services.Publish(publishPrefix)
	if err != nil {
		log.Fatalf("Publish failed: %v", err)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Uploaded: %d\n", report.Uploaded)
	fmt.Printf("  Skipped (unchanged): %d\n", report.Skipped)
	fmt.Printf("  Failed: %d\n", report.Failed)

	if report.Failed > 0 {
		os.Exit(1)
	}
}
