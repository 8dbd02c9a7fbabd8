package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() Rules {
	return Rules{
		MinPrice:        150,
		MaxPrice:        1000,
		MegaMinDiscount: 80,
		MegaMaxDiscount: 95,
	}
}

func mrp(v float64) *float64 { return &v }

func TestClassifyDiscountBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		mrp      float64
		discount float64
		mega     bool
	}{
		{"lower bound inclusive", 200, 1000, 80.0, true},
		{"upper bound inclusive", 50, 1000, 95.0, true},
		{"above upper bound", 40, 1000, 96.0, false},
		{"below lower bound", 300, 1000, 70.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(Listing{Title: "T", Price: tt.price, MRP: mrp(tt.mrp)}, testRules())
			require.NotNil(t, classified.Discount)
			assert.Equal(t, tt.discount, *classified.Discount)
			assert.Equal(t, tt.mega, classified.MegaDeal)
		})
	}
}

func TestClassifyWithoutMRP(t *testing.T) {
	classified := Classify(Listing{Title: "T", Price: 500}, testRules())
	assert.Nil(t, classified.Discount)
	assert.False(t, classified.MegaDeal)
	assert.True(t, classified.Qualifies)
}

func TestClassifyZeroMRP(t *testing.T) {
	// Zero MRP must not produce a discount (and must not divide by zero)
	classified := Classify(Listing{Title: "T", Price: 500, MRP: mrp(0)}, testRules())
	assert.Nil(t, classified.Discount)
	assert.False(t, classified.MegaDeal)
}

func TestClassifyQualifiesIsInclusiveOr(t *testing.T) {
	rules := testRules()

	// In price band, not a mega deal
	inBand := Classify(Listing{Price: 999}, rules)
	assert.False(t, inBand.MegaDeal)
	assert.True(t, inBand.Qualifies)

	// Mega deal outside the price band still qualifies
	mega := Classify(Listing{Price: 120, MRP: mrp(1000)}, rules)
	assert.True(t, mega.MegaDeal)
	assert.True(t, mega.Qualifies)

	// Both at once also qualifies
	both := Classify(Listing{Price: 200, MRP: mrp(1000)}, rules)
	assert.True(t, both.MegaDeal)
	assert.True(t, both.Qualifies)

	// Neither condition holds
	neither := Classify(Listing{Price: 5000, MRP: mrp(6000)}, rules)
	assert.False(t, neither.MegaDeal)
	assert.False(t, neither.Qualifies)
}

func TestClassifyPriceBandBoundaries(t *testing.T) {
	rules := testRules()
	assert.True(t, Classify(Listing{Price: 150}, rules).Qualifies, "lower bound is inclusive")
	assert.True(t, Classify(Listing{Price: 1000}, rules).Qualifies, "upper bound is inclusive")
	assert.False(t, Classify(Listing{Price: 149.99}, rules).Qualifies)
	assert.False(t, Classify(Listing{Price: 1000.01}, rules).Qualifies)
}
