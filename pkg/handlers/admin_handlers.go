package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// SyncHandler triggers a reconciliation of the images directory against the
// catalog and reports the outcome
func SyncHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Println("Sync triggered via admin endpoint")

	report, err := services.Sync(false)
	if err != nil {
		log.Printf("Sync failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"images":             len(report.Results),
		"thumbnails_created": report.ThumbsCreated(),
		"failed":             report.Failed(),
		"new_entries":        report.NewEntries,
		"updated":            report.Updated,
		"saved":              report.Saved,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding sync response: %v", err)
	}
}

// ThumbnailHandler regenerates the thumbnail for a single image, passed as
// the "image" query parameter
func ThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	image := r.URL.Query().Get("image")
	if image == "" {
		http.Error(w, "image parameter required", http.StatusBadRequest)
		return
	}

	log.Printf("Regenerating thumbnail for %s", image)

	if err := services.RegenerateThumbnail(image); err != nil {
		log.Printf("Thumbnail regeneration failed for %s: %v", image, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok", "image": image}); err != nil {
		log.Printf("Error encoding thumbnail response: %v", err)
	}
}
