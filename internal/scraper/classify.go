package scraper

// Classify evaluates a listing against the configured bands. It is pure and
// total. A listing qualifies when its price lies inside the price band or it
// is a mega deal; both conditions count, not just one of them.
func Classify(listing Listing, rules Rules) ClassifiedListing {
	classified := ClassifiedListing{Listing: listing}

	if listing.MRP != nil && *listing.MRP > 0 {
		discount := (*listing.MRP - listing.Price) / *listing.MRP * 100.0
		classified.Discount = &discount
		classified.MegaDeal = discount >= rules.MegaMinDiscount && discount <= rules.MegaMaxDiscount
	}

	inPriceBand := listing.Price >= rules.MinPrice && listing.Price <= rules.MaxPrice
	classified.Qualifies = inPriceBand || classified.MegaDeal

	return classified
}
