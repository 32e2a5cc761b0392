package main

import (
	"log"
	"net/http"
	"os"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/config"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/handlers"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// Standalone preview server entry, for deployments that only need the server
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize services
	services.InitService(cfg)

	// Set up HTTP handlers
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
