// Package moneyfmt converts the locale-formatted text found on the
// upstream pages ("." as thousands separator, "," as decimal separator)
// into numeric values. Malformed input always maps to nil, never an error.
package moneyfmt

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseCurrency parses strings like "$1.440,00" into 1440. The currency
// marker is required, anything that doesn't survive a float conversion
// after stripping separators yields nil.
func ParseCurrency(s string) *float64 {
	if !strings.Contains(s, "$") {
		return nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParsePercentage parses strings like "10.63%" or "0,5%" into their
// numeric value. Percentages on these pages are small magnitude, so there
// is no thousands-separator handling.
func ParsePercentage(s string) *float64 {
	if !strings.Contains(s, "%") {
		return nil
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

const maturityLayout = "2-Jan-06"
const listingLayout = "2/1/2006"

// ParseMaturityDate parses the "17-Oct-26" pattern used for bond
// maturities. time.Parse rejects component values that don't denote a
// real calendar date, which is exactly the validation we want.
func ParseMaturityDate(s string) *time.Time {
	t, err := time.Parse(maturityLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

// ParseListingDate parses the "13/6/2025" day/month/year pattern used in
// listing descriptions.
func ParseListingDate(s string) *time.Time {
	t, err := time.Parse(listingLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
