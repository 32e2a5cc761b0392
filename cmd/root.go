package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/config"
)

// Configuration flags
var (
	imagesDir   string
	catalogFile string
	bucketName  string
	portNumber  string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gallery",
		Short: "Gallery maintains the photo gallery of the site",
		Long: `Gallery is a command line tool that keeps the site's photo gallery in shape:
it generates square thumbnails for every source image, maintains gallery.json
without touching hand-edited metadata, and can preview or publish the result.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&imagesDir, "images-dir", "i", "", "Set the IMAGES_DIR (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "", "Set the CATALOG_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newListEntriesCmd())
	rootCmd.AddCommand(newShowEntryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPublishCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if imagesDir != "" {
		os.Setenv("IMAGES_DIR", imagesDir)
	}

	if catalogFile != "" {
		os.Setenv("CATALOG_FILE", catalogFile)
	}

	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}
