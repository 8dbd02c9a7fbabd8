package helpers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	apperr "welldecore/pricetracker/pkg/errors"

	"golang.org/x/net/html/charset"
)

// PageFetcher fetches category listing pages with browser-like headers.
type PageFetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
}

// NewPageFetcher creates a fetcher using the configured request headers.
func NewPageFetcher(userAgent, acceptLanguage string) *PageFetcher {
	return &PageFetcher{
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
	}
}

// FetchPage sends an HTTP GET request with the configured headers, converts
// the response body to UTF-8 (if needed), and returns it as an io.Reader.
func (f *PageFetcher) FetchPage(url string) (io.Reader, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	req.Header.Set("Accept-Language", f.acceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	// Send the request
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	// Check for rate limiting
	if slices.Contains([]int{http.StatusTooManyRequests, 430, http.StatusServiceUnavailable}, resp.StatusCode) {
		resp.Body.Close()
		retryAfter := resp.Header.Get("Retry-After")
		return nil, apperr.New(apperr.ErrorTypeRateLimit, "",
			fmt.Sprintf("rate limited; retry after %s", retryAfter), nil)
	}

	// Check for other error status codes
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s unexpected status code: %d", url, resp.StatusCode)
	}

	defer resp.Body.Close()

	// Read the entire response body
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Determine the encoding from Content-Type header and body content
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))

	// If already UTF-8, return as is
	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(bodyBytes), nil
	}

	// Convert to UTF-8 if necessary
	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return nil, fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}

	return &buf, nil
}
