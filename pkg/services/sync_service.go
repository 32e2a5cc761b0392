package services

import (
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/models"
)

// Report aggregates the typed outcomes of one reconciliation run
type Report struct {
	Results    []ImageResult // one per source image found
	NewEntries int           // catalog entries created
	Updated    int           // entries whose thumbnail field was backfilled
	Pruned     int           // entries dropped (rebuild policy only)
	Saved      bool          // whether the catalog file was rewritten
}

// ThumbsCreated returns how many thumbnails were generated this run
func (r *Report) ThumbsCreated() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ThumbCreated {
			n++
		}
	}
	return n
}

// Failed returns how many source images were skipped on decode/encode errors
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ThumbFailed {
			n++
		}
	}
	return n
}

// mergeItem is one source image with a usable thumbnail, reduced to the
// values the catalog merge needs. The merge itself never touches the
// filesystem.
type mergeItem struct {
	RelImage string // canonical catalog path, "./images/photo.jpg"
	RelThumb string // canonical thumbnail path, "./images/photo-thumb.jpg"
	Stem     string
	Info     CaptureInfo
	HasInfo  bool
}

// Sync reconciles the images directory with the catalog: every qualifying
// source image ends up with a square thumbnail on disk and a catalog entry,
// and metadata the owner already edited is preserved. With rebuild set, the
// catalog is instead reconstructed from the images currently present,
// renumbered 1..N by image path.
//
// A missing images directory is a clean no-op. A returned error means the
// catalog could not be persisted, the only failure that is fatal for a run.
func (s *Service) Sync(rebuild bool) (*Report, error) {
	report := &Report{}

	if _, err := os.Stat(s.config.ImagesDir); err != nil {
		log.Printf("Images directory %s not found, nothing to do", s.config.ImagesDir)
		return report, nil
	}

	catalog := s.LoadCatalog()
	sources := s.scanImages()

	var items []mergeItem
	for _, name := range sources {
		thumbName := s.ThumbnailName(name)
		src := filepath.Join(s.config.ImagesDir, name)
		dst := filepath.Join(s.config.ImagesDir, thumbName)

		status, err := s.CreateThumbnail(src, dst)
		report.Results = append(report.Results, ImageResult{
			Source:    name,
			Thumbnail: thumbName,
			Status:    status,
			Err:       err,
		})

		switch status {
		case ThumbCreated:
			log.Printf("Created thumbnail: %s", thumbName)
		case ThumbFailed:
			// One corrupt image never aborts the batch
			log.Printf("Failed thumbnail for %s: %v", name, err)
			continue
		}

		item := mergeItem{
			RelImage: s.relPath(name),
			RelThumb: s.relPath(thumbName),
			Stem:     strings.TrimSuffix(name, filepath.Ext(name)),
		}
		item.Info, item.HasInfo = captureInfo(src)
		items = append(items, item)
	}

	var next models.Catalog
	if rebuild {
		next = rebuildCatalog(catalog, items)
		report.Pruned = countPruned(catalog, next)
	} else {
		next, report.NewEntries, report.Updated = mergeCatalog(catalog, items, s.relPathExists)
	}

	saved, err := s.SaveCatalog(next)
	if err != nil {
		return report, err
	}
	report.Saved = saved

	if saved {
		log.Printf("Saved %s with %d entries", s.config.CatalogPath(), len(next))
	}
	return report, nil
}

// mergeCatalog applies the conservative policy: existing entries keep all
// their metadata, only a missing or dangling thumbnail field is backfilled,
// new images are appended with max-id+1 and placeholder metadata. Entries
// whose files vanished are retained. The function is pure apart from the
// injected existence check.
func mergeCatalog(old models.Catalog, items []mergeItem, exists func(rel string) bool) (models.Catalog, int, int) {
	catalog := old.Clone()
	nextID := catalog.MaxID()
	created, updated := 0, 0

	for _, item := range items {
		if i := catalog.ByImage(item.RelImage); i >= 0 {
			entry := &catalog[i]
			if entry.Thumbnail == item.RelThumb {
				continue
			}
			// A thumbnail path the owner pointed at a real alternate file
			// is deliberate and stays untouched
			if entry.Thumbnail == "" || !exists(entry.Thumbnail) {
				entry.Thumbnail = item.RelThumb
				updated++
			}
			continue
		}

		nextID++
		catalog = append(catalog, newEntry(item, nextID))
		created++
	}

	return catalog, created, updated
}

// rebuildCatalog applies the rebuild policy: only images currently present
// with a usable thumbnail survive, renumbered 1..N sorted by image path.
// Metadata of surviving entries is still preserved.
func rebuildCatalog(old models.Catalog, items []mergeItem) models.Catalog {
	sorted := make([]mergeItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RelImage < sorted[j].RelImage
	})

	old = old.Clone()
	catalog := make(models.Catalog, 0, len(sorted))
	for n, item := range sorted {
		if i := old.ByImage(item.RelImage); i >= 0 {
			entry := old[i]
			entry.ID = n + 1
			if entry.Thumbnail == "" {
				entry.Thumbnail = item.RelThumb
			}
			catalog = append(catalog, entry)
			continue
		}
		catalog = append(catalog, newEntry(item, n+1))
	}

	return catalog
}

// newEntry builds a catalog entry for a freshly discovered image, placeholder
// metadata first, EXIF capture info layered on when available
func newEntry(item mergeItem, id int) models.Entry {
	entry := models.DefaultEntry(item.Stem, id)
	entry.Image = item.RelImage
	entry.Thumbnail = item.RelThumb
	if item.HasInfo {
		if item.Info.Date != "" {
			entry.Date = item.Info.Date
		}
		if item.Info.Camera != "" {
			entry.Camera = item.Info.Camera
		}
	}
	return entry
}

// countPruned counts old entries with no counterpart in the rebuilt catalog
func countPruned(old, next models.Catalog) int {
	pruned := 0
	for _, entry := range old {
		if next.ByImage(entry.Image) < 0 {
			pruned++
		}
	}
	return pruned
}

// scanImages lists source image names directly inside the images directory,
// excluding thumbnails, in natural order
func (s *Service) scanImages() []string {
	entries, err := os.ReadDir(s.config.ImagesDir)
	if err != nil {
		log.Printf("Error reading %s: %v", s.config.ImagesDir, err)
		return nil
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if strings.HasSuffix(strings.ToLower(stem), s.config.ThumbSuffix) {
			continue
		}
		sources = append(sources, entry.Name())
	}

	sort.Slice(sources, func(i, j int) bool {
		return naturalLess(sources[i], sources[j])
	})
	return sources
}

// isImageFile reports whether the name carries a JPEG extension
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// relPath returns the canonical catalog path for a file inside the images
// directory, e.g. "./images/photo.jpg"
func (s *Service) relPath(name string) string {
	return "./" + path.Join(filepath.Base(s.config.ImagesDir), name)
}

// relPathExists resolves a canonical catalog path against the site root and
// reports whether the file is on disk
func (s *Service) relPathExists(rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	_, err := os.Stat(filepath.Join(s.config.SiteRoot(), filepath.FromSlash(rel)))
	return err == nil
}
