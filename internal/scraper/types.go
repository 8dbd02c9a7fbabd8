package scraper

import "io"

// Category is one named listing page to poll.
type Category struct {
	Name string
	URL  string
}

// Listing represents one product entry extracted from a category page.
// Price is always present and non-negative; Link is always absolute.
// MRP is nil when the page shows no strikethrough price.
type Listing struct {
	Title string
	Link  string
	Price float64
	MRP   *float64
}

// ClassifiedListing is a Listing evaluated against the configured bands.
// Discount is non-nil iff MRP is present and positive.
type ClassifiedListing struct {
	Listing
	Discount  *float64
	MegaDeal  bool
	Qualifies bool
}

// Rules holds the classification bands. All bounds are inclusive.
type Rules struct {
	MinPrice        float64
	MaxPrice        float64
	MegaMinDiscount float64
	MegaMaxDiscount float64
}

// Selectors contains the structural markers that identify result cards and
// price nodes on a listing page.
type Selectors struct {
	ResultCard     string
	Heading        string
	PriceOffscreen string
	PriceWhole     string
	PriceFraction  string
	MRPBlock       string
}

// AmazonSelectors returns the markers used by Amazon search result pages.
func AmazonSelectors() Selectors {
	return Selectors{
		ResultCard:     `div[data-component-type="s-search-result"]`,
		Heading:        "h2",
		PriceOffscreen: "span.a-offscreen",
		PriceWhole:     "span.a-price-whole",
		PriceFraction:  "span.a-price-fraction",
		MRPBlock:       "span.a-text-price",
	}
}

// FetchFunc fetches a page and returns its body as a UTF-8 reader.
type FetchFunc func(url string) (io.Reader, error)
