package alert

import (
	"fmt"
	"math"
	"strings"
	"time"

	"welldecore/pricetracker/internal/scraper"
)

const timestampLayout = "02-Jan-2006 15:04"

// Message is a delivery-ready alert for one classified listing.
type Message struct {
	Category string
	Text     string
	Listing  scraper.ClassifiedListing
}

// Composer renders classified listings into human-readable alert texts with
// affiliate-tagged links.
type Composer struct {
	AffiliateTag string
}

// NewComposer creates a composer using the given affiliate tag.
func NewComposer(affiliateTag string) *Composer {
	return &Composer{AffiliateTag: affiliateTag}
}

// Compose renders a message for the listing. The mega-deal template takes
// precedence whenever the listing is a mega deal with a visible MRP; all
// other listings use the standard template. now supplies the embedded
// timestamp so rendering stays deterministic in tests.
func (c *Composer) Compose(listing scraper.ClassifiedListing, categoryName string, now time.Time) Message {
	var text string
	if listing.MegaDeal && listing.MRP != nil {
		text = c.megaDealText(listing, categoryName, now)
	} else {
		text = c.standardText(listing, categoryName, now)
	}

	return Message{
		Category: categoryName,
		Text:     text,
		Listing:  listing,
	}
}

func (c *Composer) megaDealText(listing scraper.ClassifiedListing, categoryName string, now time.Time) string {
	lines := []string{
		"🚨🚨 MEGA DEAL ALERT 🚨🚨",
		"Category: " + categoryName,
		"Title: " + listing.Title,
		fmt.Sprintf("MRP: ₹%d", int(*listing.MRP)),
		fmt.Sprintf("Offer Price: ₹%d", int(math.Round(listing.Price))),
		fmt.Sprintf("Discount: %.1f%% OFF", *listing.Discount),
		"Time: " + now.Format(timestampLayout),
		"CTA: Hurry! Limited stock!",
		"Link: " + Affiliate(listing.Link, c.AffiliateTag),
	}
	return strings.Join(lines, "\n")
}

func (c *Composer) standardText(listing scraper.ClassifiedListing, categoryName string, now time.Time) string {
	mrpPart := ""
	if listing.MRP != nil {
		mrpPart = fmt.Sprintf(" (MRP: ₹%d)", int(*listing.MRP))
	}

	lines := []string{
		fmt.Sprintf("📢 %s Deal (%s)", strings.ToUpper(categoryName), now.Format(timestampLayout)),
		"Title: " + listing.Title,
		fmt.Sprintf("Price: ₹%d%s", int(math.Round(listing.Price)), mrpPart),
		"CTA: Grab it before it’s gone!",
		"Link: " + Affiliate(listing.Link, c.AffiliateTag),
	}
	return strings.Join(lines, "\n")
}

// Affiliate appends the tracking tag to a product link, using & when the
// link already carries a query string.
func Affiliate(link, tag string) string {
	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}
	return link + sep + "tag=" + tag
}
