package scraper

import (
	"fmt"
	"time"

	"welldecore/pricetracker/services/cache"

	apperr "welldecore/pricetracker/pkg/errors"
)

// CategoryScraper runs the fetch and extract stages for one category at a
// time. When a cache service is configured, a category whose source responds
// with a rate-limit status is blocked for BlockTime so later passes skip it
// instead of hammering the site.
type CategoryScraper struct {
	Fetch     FetchFunc
	Extractor *Extractor
	MaxItems  int
	CacheSvc  cache.CacheService
	BlockTime time.Duration
}

// NewCategoryScraper creates a scraper. cacheSvc may be nil; the rate-limit
// guard is then disabled.
func NewCategoryScraper(fetch FetchFunc, extractor *Extractor, maxItems int, cacheSvc cache.CacheService, blockTime time.Duration) *CategoryScraper {
	return &CategoryScraper{
		Fetch:     fetch,
		Extractor: extractor,
		MaxItems:  maxItems,
		CacheSvc:  cacheSvc,
		BlockTime: blockTime,
	}
}

// FetchListings fetches the category page and extracts its listings.
func (s *CategoryScraper) FetchListings(category Category) ([]Listing, error) {
	blockKey := blockKey(category.Name)

	if s.CacheSvc != nil {
		if _, err := s.CacheSvc.Get(blockKey); err == nil {
			return nil, apperr.NewRateLimit(category.Name, s.BlockTime)
		}
	}

	body, err := s.Fetch(category.URL)
	if err != nil {
		if s.CacheSvc != nil && apperr.IsType(err, apperr.ErrorTypeRateLimit) {
			blockValue := []byte(fmt.Sprintf("%d", s.BlockTime/time.Second))
			if setErr := s.CacheSvc.Set(blockKey, blockValue, s.BlockTime); setErr != nil {
				return nil, apperr.NewCache(category.Name, "failed to set rate-limit block", setErr)
			}
		}
		return nil, apperr.NewNetwork(category.Name, "failed to fetch category page", err)
	}

	return s.Extractor.Extract(body, s.MaxItems)
}

func blockKey(categoryName string) string {
	return categoryName + "_rate_limited"
}
