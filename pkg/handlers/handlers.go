package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/eknkc/pug"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/models"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/services"
)

// GalleryHandler handles requests for the gallery preview page
func GalleryHandler(w http.ResponseWriter, _ *http.Request) {
	log.Println("Generating Gallery Page")

	template, err := pug.CompileFile("./views/gallery.pug", pug.Options{})
	if err != nil {
		log.Printf("Error compiling gallery template: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	err = template.Execute(w, models.Index{
		Categories: services.GetCategories(),
	})

	if err != nil {
		log.Printf("Error rendering gallery page: %v", err)
	}
}

// FeedHandler serves the catalog as JSON, the same shape the site's gallery
// page fetches from gallery.json
func FeedHandler(w http.ResponseWriter, _ *http.Request) {
	log.Println("Generating Feed")

	entries := services.GetEntries()

	jsonString, err := json.Marshal(entries)
	if err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(jsonString)
	if err != nil {
		return
	}
}
