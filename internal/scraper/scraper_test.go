package scraper

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	apperr "welldecore/pricetracker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const categoryPageHTML = `<html><body>
	<div data-component-type="s-search-result">
		<h2><a href="/dp/B0PHONE1">Phone X</a></h2>
		<span class="a-price"><span class="a-offscreen">₹899.00</span></span>
	</div>
</body></html>`

func TestFetchListings(t *testing.T) {
	fetch := func(url string) (io.Reader, error) {
		assert.Equal(t, "https://example.com/mobiles", url)
		return strings.NewReader(categoryPageHTML), nil
	}

	s := NewCategoryScraper(fetch, testExtractor(), 12, nil, 0)
	listings, err := s.FetchListings(Category{Name: "mobiles", URL: "https://example.com/mobiles"})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Phone X", listings[0].Title)
}

func TestFetchListingsNetworkError(t *testing.T) {
	fetch := func(url string) (io.Reader, error) {
		return nil, errors.New("connection refused")
	}

	s := NewCategoryScraper(fetch, testExtractor(), 12, nil, 0)
	_, err := s.FetchListings(Category{Name: "mobiles", URL: "https://example.com/mobiles"})
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeNetwork))
}

func TestFetchListingsRateLimitBlocksCategory(t *testing.T) {
	calls := 0
	fetch := func(url string) (io.Reader, error) {
		calls++
		return nil, apperr.New(apperr.ErrorTypeRateLimit, "", "rate limited; retry after 60", nil)
	}

	mockCache := NewMockCacheService()
	s := NewCategoryScraper(fetch, testExtractor(), 12, mockCache, 300*time.Second)
	category := Category{Name: "mobiles", URL: "https://example.com/mobiles"}

	// First call hits the source and records the block
	_, err := s.FetchListings(category)
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	// Second call must short-circuit on the block key without fetching
	_, err = s.FetchListings(category)
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeRateLimit))
	assert.Equal(t, 1, calls, "blocked category should not be fetched again")
}

func TestFetchListingsNilCacheIsSupported(t *testing.T) {
	fetch := func(url string) (io.Reader, error) {
		return nil, apperr.New(apperr.ErrorTypeRateLimit, "", "rate limited", nil)
	}

	s := NewCategoryScraper(fetch, testExtractor(), 12, nil, 300*time.Second)
	_, err := s.FetchListings(Category{Name: "mobiles", URL: "https://example.com/mobiles"})
	assert.Error(t, err)
}
