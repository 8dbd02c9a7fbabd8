package helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperr "welldecore/pricetracker/pkg/errors"

	"github.com/stretchr/testify/assert"
)

const testUserAgent = "TestAgent/1.0"

func TestFetchPage(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check that configured headers are set
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "en-IN,en;q=0.9", r.Header.Get("Accept-Language"))
		assert.NotEmpty(t, r.Header.Get("Accept"))

		// Send a response
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	// Fetch the page
	fetcher := NewPageFetcher(testUserAgent, "en-IN,en;q=0.9")
	reader, err := fetcher.FetchPage(server.URL)
	assert.NoError(t, err)

	// Read the response
	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestFetchPageNonUTF8(t *testing.T) {
	// Create a test server that returns a non-UTF8 response
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.WriteHeader(http.StatusOK)
		// This is "Hello, World!" in ISO-8859-1 encoding
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	fetcher := NewPageFetcher(testUserAgent, "en-IN,en;q=0.9")
	reader, err := fetcher.FetchPage(server.URL)
	assert.NoError(t, err)

	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestFetchPageError(t *testing.T) {
	// Create a test server that returns an error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewPageFetcher(testUserAgent, "en-IN,en;q=0.9")
	_, err := fetcher.FetchPage(server.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}

func TestFetchPageRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetcher := NewPageFetcher(testUserAgent, "en-IN,en;q=0.9")
	_, err := fetcher.FetchPage(server.URL)
	assert.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeRateLimit))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestFetchPageInvalidURL(t *testing.T) {
	fetcher := NewPageFetcher(testUserAgent, "en-IN,en;q=0.9")
	_, err := fetcher.FetchPage("http://invalid.url.that.does.not.exist")
	assert.Error(t, err)
}
