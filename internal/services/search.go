package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/dgraph-io/ristretto/v2"
)

// SearchService performs case-insensitive substring search over verse text
type SearchService struct {
	store *VerseStore
	cache *ristretto.Cache[string, []models.SearchResult]
}

// SearchCacheConfig sizes the result cache
type SearchCacheConfig struct {
	MaxKeys int64
	MaxCost int64
}

// NewSearchService creates a search service over store. Results are cached
// per lowercased term; the store is immutable so entries never go stale.
func NewSearchService(store *VerseStore, cfg SearchCacheConfig) *SearchService {
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 1000
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = 100000
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, []models.SearchResult]{
		NumCounters: cfg.MaxKeys * 10,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create search cache: %v", err))
	}

	return &SearchService{store: store, cache: c}
}

// Search returns every verse whose text contains term, ignoring case, in
// (book, chapter, verse) order. A blank term yields no results.
func (s *SearchService) Search(term string) []models.SearchResult {
	if strings.TrimSpace(term) == "" {
		return []models.SearchResult{}
	}

	needle := strings.ToLower(term)
	if cached, ok := s.cache.Get(needle); ok {
		return slices.Clone(cached)
	}

	results := Search(s.store, needle)
	s.cache.Set(needle, results, int64(len(results))+1)
	return slices.Clone(results)
}

// Close releases the cache
func (s *SearchService) Close() {
	s.cache.Close()
}

// Search scans store without caching
func Search(store *VerseStore, term string) []models.SearchResult {
	results := []models.SearchResult{}
	if strings.TrimSpace(term) == "" {
		return results
	}

	needle := strings.ToLower(term)
	for v := range store.All() {
		if strings.Contains(strings.ToLower(v.Text), needle) {
			results = append(results, models.SearchResult{
				Book:      v.Book,
				Chapter:   v.Chapter,
				Verse:     v.Verse,
				Text:      v.Text,
				Reference: v.Reference(),
			})
		}
	}
	return results
}
