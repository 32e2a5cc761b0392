package cmd

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/config"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/handlers"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// newServeCmd creates a new command for the local preview server
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the local preview server",
		Long: `Start a local web server that serves the site directory, renders a gallery
preview page and exposes the catalog as a JSON feed. Admin endpoints allow
triggering a sync or regenerating a single thumbnail without leaving the
browser.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			serveSite(cfg)
		},
	}
}

// serveSite runs the preview server over the site root
func serveSite(cfg *config.Config) {
	fileServer := http.FileServer(http.Dir(cfg.SiteRoot()))
	http.Handle("/", fileServer)
	http.HandleFunc("/gallery", handlers.GalleryHandler)
	http.HandleFunc("/feed", handlers.FeedHandler)
	http.HandleFunc("/admin/sync", handlers.SyncHandler)
	http.HandleFunc("/admin/thumbnail", handlers.ThumbnailHandler)

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), nil); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
