package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// PublishReport summarizes one publish run
type PublishReport struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// Publish uploads the images directory (sources, thumbnails and the catalog)
// to the configured bucket under the given prefix. Objects whose size already
// matches the local file are skipped. Individual upload failures are logged
// and counted; only client setup or listing errors abort the run.
func (s *Service) Publish(prefix string) (*PublishReport, error) {
	if err := s.config.RequireBucket(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.config.ImagesDir); err != nil {
		return nil, fmt.Errorf("images directory %s not found", s.config.ImagesDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("Warning: error closing storage client: %v", err)
		}
	}()

	bucket := client.Bucket(s.config.BucketName)
	remotePrefix := path.Join(prefix, filepath.Base(s.config.ImagesDir))

	// First pass: sizes of everything already in the bucket under the prefix
	sizes := make(map[string]int64)
	it := bucket.Objects(ctx, &storage.Query{Prefix: remotePrefix})
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %v", err)
		}
		sizes[obj.Name] = obj.Size
	}

	entries, err := os.ReadDir(s.config.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %v", s.config.ImagesDir, err)
	}

	report := &PublishReport{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isImageFile(name) && name != s.config.CatalogName {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("Error stating %s: %v", name, err)
			report.Failed++
			continue
		}

		objectName := path.Join(remotePrefix, name)
		if size, ok := sizes[objectName]; ok && size == info.Size() {
			report.Skipped++
			continue
		}

		src := filepath.Join(s.config.ImagesDir, name)
		if err := uploadObject(ctx, bucket, src, objectName); err != nil {
			log.Printf("Error uploading %s: %v", name, err)
			report.Failed++
			continue
		}

		log.Printf("Uploaded %s", objectName)
		report.Uploaded++
	}

	return report, nil
}

// uploadObject uploads a local file to the bucket with a content type derived
// from its extension
func uploadObject(ctx context.Context, bucket *storage.BucketHandle, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %v", err)
	}

	writer := bucket.Object(dst).NewWriter(ctx)
	writer.ContentType = contentTypeFor(dst)

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("Writer.Write: %v", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %v", err)
	}

	return nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
