package services

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureInfo holds the metadata read from an image's EXIF block
type CaptureInfo struct {
	Date   string // capture date formatted 2006-01-02
	Camera string // camera model string
}

// MetadataFn looks up capture metadata for a source image path. It returns
// false when nothing usable was found; callers then keep their placeholders.
type MetadataFn func(path string) (CaptureInfo, bool)

// captureInfo is the live MetadataFn: best-effort EXIF read, never an error.
// Images without EXIF (screenshots, exports, synthetic files) simply report
// no metadata.
func captureInfo(path string) (CaptureInfo, bool) {
	f, err := os.Open(path)
	if err != nil {
		return CaptureInfo{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return CaptureInfo{}, false
	}

	var info CaptureInfo

	if taken, err := x.DateTime(); err == nil {
		info.Date = taken.Format("2006-01-02")
	}

	if tag, err := x.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			info.Camera = model
		}
	}

	if info.Date == "" && info.Camera == "" {
		return CaptureInfo{}, false
	}
	return info, true
}
