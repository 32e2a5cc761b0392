package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/models"
)

// LoadCatalog reads the catalog file. A missing file yields an empty catalog.
// An unparsable file is preserved next to the original as <name>.broken and
// also yields an empty catalog, so the next save cannot silently destroy a
// transiently corrupted file.
func (s *Service) LoadCatalog() models.Catalog {
	path := s.config.CatalogPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning reading %s: %v", path, err)
		}
		return models.Catalog{}
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Printf("Warning reading %s: %v", path, err)
		broken := path + ".broken"
		if err := os.WriteFile(broken, data, 0644); err != nil {
			log.Printf("Warning: could not preserve damaged catalog as %s: %v", broken, err)
		} else {
			log.Printf("Damaged catalog preserved as %s", broken)
		}
		return models.Catalog{}
	}

	return catalog
}

// SaveCatalog persists the catalog as pretty-printed JSON. The write is
// skipped when the file already holds identical content, and is otherwise
// atomic: a temp file in the same directory renamed over the destination.
// Returns whether a write happened.
func (s *Service) SaveCatalog(catalog models.Catalog) (bool, error) {
	path := s.config.CatalogPath()

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshaling catalog: %v", err)
	}
	data = append(data, '\n')

	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("creating %s: %v", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), s.config.CatalogName+".tmp-*")
	if err != nil {
		return false, fmt.Errorf("creating temp catalog: %v", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return false, fmt.Errorf("writing temp catalog: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("closing temp catalog: %v", err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("setting catalog permissions: %v", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("replacing %s: %v", path, err)
	}

	s.flushCache()
	return true, nil
}
