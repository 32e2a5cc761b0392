package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration for the gallery tools
type Config struct {
	ImagesDir   string // directory holding source images and thumbnails
	CatalogName string // catalog file name inside ImagesDir
	ThumbSuffix string // appended to the image stem to form the thumbnail name
	ThumbSize   int    // square thumbnail edge in pixels
	JPEGQuality int    // JPEG encode quality for generated thumbnails
	BucketName  string // GCS bucket for publishing, optional
	Port        string
}

// ErrBucketNameNotSet is returned when an operation needs a bucket but the
// BUCKET_NAME environment variable is not set
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// Load loads configuration from environment variables, falling back to the
// defaults the site repository has always used
func Load() (*Config, error) {
	cfg := &Config{
		ImagesDir:   "images",
		CatalogName: "gallery.json",
		ThumbSuffix: "-thumb",
		ThumbSize:   400,
		JPEGQuality: 85,
		BucketName:  os.Getenv("BUCKET_NAME"),
		Port:        "8080",
	}

	if dir := os.Getenv("IMAGES_DIR"); dir != "" {
		cfg.ImagesDir = dir
	}

	if name := os.Getenv("CATALOG_FILE"); name != "" {
		cfg.CatalogName = name
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if size := os.Getenv("THUMB_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid THUMB_SIZE %q", size)
		}
		cfg.ThumbSize = n
	}

	if quality := os.Getenv("JPEG_QUALITY"); quality != "" {
		n, err := strconv.Atoi(quality)
		if err != nil || n < 1 || n > 100 {
			return nil, fmt.Errorf("invalid JPEG_QUALITY %q", quality)
		}
		cfg.JPEGQuality = n
	}

	return cfg, nil
}

// RequireBucket verifies that a bucket name is configured
func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrBucketNameNotSet
	}
	return nil
}

// CatalogPath returns the full path of the catalog file
func (c *Config) CatalogPath() string {
	return filepath.Join(c.ImagesDir, c.CatalogName)
}

// SiteRoot returns the directory the site is served from, the parent of the
// images directory. Catalog paths like "./images/photo.jpg" resolve against it.
func (c *Config) SiteRoot() string {
	return filepath.Dir(c.ImagesDir)
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the preview server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting preview server at port %s\n", c.Port)
	fmt.Printf("Gallery URL: http://localhost:%s/gallery\n", c.Port)
	fmt.Printf("Feed URL: http://localhost:%s/feed\n", c.Port)
}
