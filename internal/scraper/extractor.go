package scraper

import (
	"io"
	"strconv"
	"strings"

	apperr "welldecore/pricetracker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Extractor parses a category page into listing candidates. A malformed card
// never aborts extraction; it is skipped and the remaining cards are kept.
type Extractor struct {
	Selectors  Selectors
	BaseDomain string
}

// NewExtractor creates an extractor resolving relative links against baseDomain.
func NewExtractor(selectors Selectors, baseDomain string) *Extractor {
	return &Extractor{
		Selectors:  selectors,
		BaseDomain: strings.TrimSuffix(baseDomain, "/"),
	}
}

// Extract parses the page body and returns up to maxItems listings in
// document order.
func (e *Extractor) Extract(body io.Reader, maxItems int) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apperr.NewParsing("", "failed to parse listing page", err)
	}

	var listings []Listing
	doc.Find(e.Selectors.ResultCard).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(listings) >= maxItems {
			return false
		}
		if listing, ok := e.extractCard(card); ok {
			listings = append(listings, listing)
		}
		return true
	})

	return listings, nil
}

// extractCard pulls one listing out of a result card. The second return value
// is false when the card fails a structural assumption and must be skipped.
func (e *Extractor) extractCard(card *goquery.Selection) (Listing, bool) {
	heading := card.Find(e.Selectors.Heading).First()
	if heading.Length() == 0 {
		return Listing{}, false
	}

	anchor := heading.Find("a").First()
	if anchor.Length() == 0 {
		return Listing{}, false
	}

	title := strings.TrimSpace(heading.Text())
	if title == "" {
		return Listing{}, false
	}

	href := strings.TrimSpace(anchor.AttrOr("href", ""))
	if href == "" {
		return Listing{}, false
	}

	price, ok := e.extractPrice(card)
	if !ok || price < 0 {
		return Listing{}, false
	}

	return Listing{
		Title: title,
		Link:  e.resolveLink(href),
		Price: price,
		MRP:   e.extractMRP(card),
	}, true
}

// extractPrice resolves the offer price. The dedicated screen-reader price
// node wins; otherwise the split whole/fraction pair is concatenated and
// parsed directly.
func (e *Extractor) extractPrice(card *goquery.Selection) (float64, bool) {
	if text := card.Find(e.Selectors.PriceOffscreen).First().Text(); text != "" {
		if price, ok := NormalizePrice(text); ok {
			return price, true
		}
	}

	whole := strings.TrimSpace(card.Find(e.Selectors.PriceWhole).First().Text())
	if whole == "" {
		return 0, false
	}

	// Amazon renders the decimal point inside the whole-part span.
	raw := strings.TrimSuffix(strings.ReplaceAll(whole, ",", ""), ".")
	if fraction := strings.TrimSpace(card.Find(e.Selectors.PriceFraction).First().Text()); fraction != "" {
		raw += "." + fraction
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// extractMRP looks for a strikethrough-price container. Absence is a valid,
// non-error outcome.
func (e *Extractor) extractMRP(card *goquery.Selection) *float64 {
	block := card.Find(e.Selectors.MRPBlock).First()
	if block.Length() == 0 {
		return nil
	}

	mrp, ok := NormalizePrice(block.Find(e.Selectors.PriceOffscreen).First().Text())
	if !ok {
		return nil
	}
	return &mrp
}

// resolveLink makes relative hrefs absolute against the base domain.
func (e *Extractor) resolveLink(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		return e.BaseDomain + "/" + href
	}
	return e.BaseDomain + href
}
