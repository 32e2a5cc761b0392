package services

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/config"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/models"
)

// newTestService returns a service bound to a temporary site tree with an
// empty images directory
func newTestService(t *testing.T) *Service {
	t.Helper()
	root := t.TempDir()
	imagesDir := filepath.Join(root, "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0755))

	return NewService(&config.Config{
		ImagesDir:   imagesDir,
		CatalogName: "gallery.json",
		ThumbSuffix: "-thumb",
		ThumbSize:   400,
		JPEGQuality: 85,
		Port:        "8080",
	})
}

// writeJPEG writes a w×h gradient JPEG so decodes succeed and the content is
// not a solid color
func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
}

func TestSyncMissingImagesDir(t *testing.T) {
	s := newTestService(t)
	s.config.ImagesDir = filepath.Join(t.TempDir(), "does-not-exist")

	report, err := s.Sync(false)
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.False(t, report.Saved)
	_, statErr := os.Stat(s.config.CatalogPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestSyncEmptyDirectory(t *testing.T) {
	s := newTestService(t)

	report, err := s.Sync(false)
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.True(t, report.Saved)

	data, err := os.ReadFile(s.config.CatalogPath())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	entries, err := os.ReadDir(s.config.ImagesDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1) // only gallery.json
}

func TestSyncNewImage(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "photo.jpg"), 800, 600)

	report, err := s.Sync(false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.ThumbsCreated())
	assert.Equal(t, 1, report.NewEntries)
	assert.True(t, report.Saved)

	// Thumbnail exists and is 400×400 JPEG
	f, err := os.Open(filepath.Join(s.config.ImagesDir, "photo-thumb.jpg"))
	require.NoError(t, err)
	defer f.Close()
	thumb, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, thumb.Bounds().Dx())
	assert.Equal(t, 400, thumb.Bounds().Dy())

	catalog := s.LoadCatalog()
	require.Len(t, catalog, 1)
	entry := catalog[0]
	assert.Equal(t, 1, entry.ID)
	assert.Equal(t, "photo", entry.Title)
	assert.Equal(t, "./images/photo.jpg", entry.Image)
	assert.Equal(t, "./images/photo-thumb.jpg", entry.Thumbnail)
	assert.Equal(t, "NaN", entry.Description)
	assert.Equal(t, "None", entry.Category)
	// Synthetic JPEGs carry no EXIF, so the placeholders stand
	assert.Equal(t, "2000-01-01", entry.Date)
	assert.Equal(t, "None", entry.Camera)
	assert.Equal(t, []string{"None"}, entry.Tags)
}

func TestSyncPreservesEditedMetadata(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "photo.jpg"), 800, 600)

	_, err := s.Sync(false)
	require.NoError(t, err)

	// The owner edits the record by hand
	catalog := s.LoadCatalog()
	catalog[0].Title = "Sunset"
	catalog[0].Location = "Goa"
	catalog[0].Tags = []string{"travel"}
	_, err = s.SaveCatalog(catalog)
	require.NoError(t, err)

	report, err := s.Sync(false)
	require.NoError(t, err)

	assert.False(t, report.Saved)
	assert.Equal(t, 0, report.NewEntries)
	assert.Equal(t, 0, report.Updated)

	catalog = s.LoadCatalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, "Sunset", catalog[0].Title)
	assert.Equal(t, "Goa", catalog[0].Location)
	assert.Equal(t, []string{"travel"}, catalog[0].Tags)
}

func TestSyncIdempotent(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "a.jpg"), 640, 480)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "b.jpg"), 480, 640)

	first, err := s.Sync(false)
	require.NoError(t, err)
	require.True(t, first.Saved)
	firstBytes, err := os.ReadFile(s.config.CatalogPath())
	require.NoError(t, err)

	second, err := s.Sync(false)
	require.NoError(t, err)

	assert.False(t, second.Saved)
	assert.Equal(t, 0, second.ThumbsCreated())
	assert.Equal(t, 0, second.NewEntries)

	secondBytes, err := os.ReadFile(s.config.CatalogPath())
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestSyncSkipsCorruptImage(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "good.jpg"), 800, 600)
	require.NoError(t, os.WriteFile(filepath.Join(s.config.ImagesDir, "bad.jpg"), []byte("not a jpeg"), 0644))

	report, err := s.Sync(false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, report.NewEntries)

	catalog := s.LoadCatalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, "./images/good.jpg", catalog[0].Image)
	assert.Equal(t, -1, catalog.ByImage("./images/bad.jpg"))

	_, statErr := os.Stat(filepath.Join(s.config.ImagesDir, "bad-thumb.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSyncAppendsWithMaxIDPlusOne(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "a.jpg"), 640, 480)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "b.jpg"), 640, 480)

	seed := models.Catalog{
		{ID: 3, Title: "A", Image: "./images/a.jpg", Thumbnail: "./images/a-thumb.jpg", Tags: []string{"None"}},
		{ID: 7, Title: "B", Image: "./images/b.jpg", Thumbnail: "./images/b-thumb.jpg", Tags: []string{"None"}},
	}
	_, err := s.SaveCatalog(seed)
	require.NoError(t, err)

	writeJPEG(t, filepath.Join(s.config.ImagesDir, "c.jpg"), 640, 480)

	_, err = s.Sync(false)
	require.NoError(t, err)

	catalog := s.LoadCatalog()
	require.Len(t, catalog, 3)

	i := catalog.ByImage("./images/c.jpg")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, 8, catalog[i].ID)

	// Ids stay stable for the existing entries
	assert.Equal(t, 3, catalog[catalog.ByImage("./images/a.jpg")].ID)
	assert.Equal(t, 7, catalog[catalog.ByImage("./images/b.jpg")].ID)

	// Pairwise distinct
	seen := make(map[int]bool)
	for _, entry := range catalog {
		assert.False(t, seen[entry.ID], "duplicate id %d", entry.ID)
		seen[entry.ID] = true
	}
}

func TestSyncRetainsOrphanEntries(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "a.jpg"), 640, 480)

	seed := models.Catalog{
		{ID: 1, Title: "Gone", Image: "./images/gone.jpg", Thumbnail: "./images/gone-thumb.jpg", Tags: []string{"None"}},
	}
	_, err := s.SaveCatalog(seed)
	require.NoError(t, err)

	_, err = s.Sync(false)
	require.NoError(t, err)

	catalog := s.LoadCatalog()
	require.Len(t, catalog, 2)
	assert.GreaterOrEqual(t, catalog.ByImage("./images/gone.jpg"), 0)
}

func TestSyncRebuild(t *testing.T) {
	s := newTestService(t)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "b.jpg"), 640, 480)
	writeJPEG(t, filepath.Join(s.config.ImagesDir, "a.jpg"), 640, 480)

	seed := models.Catalog{
		{ID: 9, Title: "Gone", Image: "./images/gone.jpg", Thumbnail: "./images/gone-thumb.jpg", Tags: []string{"None"}},
		{ID: 4, Title: "Edited B", Image: "./images/b.jpg", Thumbnail: "./images/b-thumb.jpg", Tags: []string{"None"}},
	}
	_, err := s.SaveCatalog(seed)
	require.NoError(t, err)

	report, err := s.Sync(true)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Pruned)

	catalog := s.LoadCatalog()
	require.Len(t, catalog, 2)

	// Renumbered 1..N sorted by image path
	assert.Equal(t, "./images/a.jpg", catalog[0].Image)
	assert.Equal(t, 1, catalog[0].ID)
	assert.Equal(t, "./images/b.jpg", catalog[1].Image)
	assert.Equal(t, 2, catalog[1].ID)

	// Surviving metadata is preserved through the renumbering
	assert.Equal(t, "Edited B", catalog[1].Title)
	assert.Equal(t, -1, catalog.ByImage("./images/gone.jpg"))
}

func TestMergeThumbnailBackfill(t *testing.T) {
	present := map[string]bool{
		"./images/custom.jpg": true,
	}
	exists := func(rel string) bool { return present[rel] }

	items := []mergeItem{
		{RelImage: "./images/a.jpg", RelThumb: "./images/a-thumb.jpg", Stem: "a"},
		{RelImage: "./images/b.jpg", RelThumb: "./images/b-thumb.jpg", Stem: "b"},
		{RelImage: "./images/c.jpg", RelThumb: "./images/c-thumb.jpg", Stem: "c"},
	}

	old := models.Catalog{
		{ID: 1, Title: "A", Image: "./images/a.jpg", Thumbnail: "", Tags: []string{"None"}},
		{ID: 2, Title: "B", Image: "./images/b.jpg", Thumbnail: "./images/custom.jpg", Tags: []string{"None"}},
		{ID: 3, Title: "C", Image: "./images/c.jpg", Thumbnail: "./images/dangling.jpg", Tags: []string{"None"}},
	}

	merged, created, updated := mergeCatalog(old, items, exists)

	assert.Equal(t, 0, created)
	assert.Equal(t, 2, updated)

	// Missing thumbnail backfilled
	assert.Equal(t, "./images/a-thumb.jpg", merged[0].Thumbnail)
	// A customized thumbnail pointing at a real file is untouched
	assert.Equal(t, "./images/custom.jpg", merged[1].Thumbnail)
	// A dangling thumbnail path is repaired
	assert.Equal(t, "./images/c-thumb.jpg", merged[2].Thumbnail)

	// The input catalog was not mutated
	assert.Equal(t, "", old[0].Thumbnail)
}

func TestScanImages(t *testing.T) {
	s := newTestService(t)
	for _, name := range []string{"photo10.jpg", "photo2.jpg", "upper.JPG", "scan.jpeg", "old-thumb.jpg"} {
		writeJPEG(t, filepath.Join(s.config.ImagesDir, name), 10, 10)
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.config.ImagesDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(s.config.ImagesDir, "nested"), 0755))

	sources := s.scanImages()

	// Thumbnails, non-images and directories are excluded; order is natural
	assert.Equal(t, []string{"photo2.jpg", "photo10.jpg", "scan.jpeg", "upper.JPG"}, sources)
}
