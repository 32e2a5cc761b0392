package services

import (
	"log"
	"sort"
	"strconv"
	"sync"
	"time"
	"unicode"

	"github.com/patrickmn/go-cache"

	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/config"
	"github.com/abhaskumarsinha/abhaskumarsinha.github.io/pkg/models"
)

// Service handles operations on the image directory and the gallery catalog
type Service struct {
	config       *config.Config
	catalogCache *cache.Cache
	mu           sync.RWMutex
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// NewService creates a service bound to the given configuration. Commands use
// the singleton below; tests construct services against temporary directories.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config:       cfg,
		catalogCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// InitService initializes the singleton service with the given configuration
func InitService(cfg *config.Config) {
	once.Do(func() {
		defaultService = NewService(cfg)
	})
}

// Sync reconciles the images directory with the catalog
func Sync(rebuild bool) (*Report, error) {
	return defaultService.Sync(rebuild)
}

// GetEntries returns all catalog entries
func GetEntries() models.Catalog {
	return defaultService.GetEntries()
}

// GetCategories returns the catalog entries grouped by category
func GetCategories() []models.Category {
	return defaultService.GetCategories()
}

// RegenerateThumbnail regenerates the thumbnail for a single source image
func RegenerateThumbnail(name string) error {
	return defaultService.RegenerateThumbnail(name)
}

// Publish uploads the images directory and catalog to the configured bucket
func Publish(prefix string) (*PublishReport, error) {
	return defaultService.Publish(prefix)
}

// GetEntries returns all catalog entries, caching the parsed catalog between
// requests on the serve path
func (s *Service) GetEntries() models.Catalog {
	s.mu.RLock()
	if cached, found := s.catalogCache.Get("catalog"); found {
		s.mu.RUnlock()
		return cached.(models.Catalog)
	}
	s.mu.RUnlock()

	entries := s.LoadCatalog()

	s.mu.Lock()
	s.catalogCache.Set("catalog", entries, cache.DefaultExpiration)
	s.mu.Unlock()

	return entries
}

// GetCategories returns the catalog entries grouped by category, sorted by
// category name with entries in catalog order
func (s *Service) GetCategories() []models.Category {
	entries := s.GetEntries()
	categoryMap := make(map[string]*models.Category)

	for _, entry := range entries {
		if cat, exists := categoryMap[entry.Category]; exists {
			cat.Entries = append(cat.Entries, entry)
		} else {
			categoryMap[entry.Category] = &models.Category{
				Name:    entry.Category,
				Entries: []models.Entry{entry},
			}
		}
	}

	categories := make([]models.Category, 0, len(categoryMap))
	for _, category := range categoryMap {
		categories = append(categories, *category)
	}

	sort.Slice(categories, func(i, j int) bool {
		return naturalLess(categories[i].Name, categories[j].Name)
	})

	return categories
}

// flushCache drops the cached catalog after anything rewrites it
func (s *Service) flushCache() {
	s.mu.Lock()
	s.catalogCache.Flush()
	s.mu.Unlock()
	log.Println("Catalog cache flushed")
}

// naturalLess compares strings treating digit runs as numbers rather than
// characters, so "photo2" < "photo10"
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}

		if i >= len(s1) || j >= len(s2) {
			break
		}

		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			var num1, num2 string
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				num1 += string(s1[i])
				i++
			}
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				num2 += string(s2[j])
				j++
			}

			n1, _ := strconv.Atoi(num1)
			n2, _ := strconv.Atoi(num2)
			if n1 != n2 {
				return n1 < n2
			}
		} else {
			if s1[i] != s2[j] {
				return s1[i] < s2[j]
			}
			i++
			j++
		}
	}

	return len(s1) < len(s2)
}
