package scraper

import (
	"strconv"
	"strings"
)

var priceCleaner = strings.NewReplacer("₹", "", ",", "")

// NormalizePrice converts localized currency text like "₹1,234.00" or
// "1,29,900" to its numeric value. The second return value is false when the
// text cannot be parsed as a number.
//
// Strikethrough markup sometimes leaks extra decimal points into the text;
// when that happens only the segment after the last point is treated as the
// fractional part.
func NormalizePrice(text string) (float64, bool) {
	t := strings.TrimSpace(priceCleaner.Replace(text))
	if t == "" {
		return 0, false
	}

	if strings.Count(t, ".") > 1 {
		parts := strings.Split(t, ".")
		t = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	}

	value, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
