package services

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ThumbStatus classifies the outcome of ensuring one thumbnail
type ThumbStatus int

const (
	// ThumbExists means the thumbnail was already on disk and was left alone
	ThumbExists ThumbStatus = iota
	// ThumbCreated means the thumbnail was generated during this run
	ThumbCreated
	// ThumbFailed means decode or encode failed and the image was skipped
	ThumbFailed
)

// ImageResult is the typed outcome for one source image in a batch
type ImageResult struct {
	Source    string // source file name, e.g. "photo.jpg"
	Thumbnail string // derived thumbnail file name, e.g. "photo-thumb.jpg"
	Status    ThumbStatus
	Err       error
}

// ThumbnailName derives the thumbnail file name for a source image name,
// appending the suffix before the extension and forcing .jpg
func (s *Service) ThumbnailName(imageName string) string {
	stem := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	return stem + s.config.ThumbSuffix + ".jpg"
}

// centerSquare returns the centered square crop box for a w×h image. The side
// is min(w, h); on odd differences the left/top offset is floored so the
// result is deterministic.
func centerSquare(w, h int) image.Rectangle {
	side := w
	if h < side {
		side = h
	}
	left := (w - side) / 2
	top := (h - side) / 2
	return image.Rect(left, top, left+side, top+side)
}

// CreateThumbnail generates a square thumbnail for the source image unless
// the destination already exists. JPEG encoding drops any alpha channel, so
// the output is always 3-channel.
func (s *Service) CreateThumbnail(src, dst string) (ThumbStatus, error) {
	if _, err := os.Stat(dst); err == nil {
		return ThumbExists, nil
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return ThumbFailed, fmt.Errorf("decoding %s: %v", filepath.Base(src), err)
	}

	bounds := img.Bounds()
	img = imaging.Crop(img, centerSquare(bounds.Dx(), bounds.Dy()).Add(bounds.Min))
	img = imaging.Resize(img, s.config.ThumbSize, s.config.ThumbSize, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return ThumbFailed, fmt.Errorf("creating %s: %v", filepath.Dir(dst), err)
	}

	if err := imaging.Save(img, dst, imaging.JPEGQuality(s.config.JPEGQuality)); err != nil {
		// Encode failures must not leave a partial file behind
		os.Remove(dst)
		return ThumbFailed, fmt.Errorf("encoding %s: %v", filepath.Base(dst), err)
	}

	return ThumbCreated, nil
}

// RegenerateThumbnail removes and recreates the thumbnail for a single source
// image name inside the images directory
func (s *Service) RegenerateThumbnail(imageName string) error {
	src := filepath.Join(s.config.ImagesDir, imageName)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("source image %s not found", imageName)
	}

	dst := filepath.Join(s.config.ImagesDir, s.ThumbnailName(imageName))
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old thumbnail: %v", err)
	}

	status, err := s.CreateThumbnail(src, dst)
	if err != nil {
		return err
	}
	if status == ThumbCreated {
		s.flushCache()
	}
	return nil
}
