package dolarg

import "time"

// Quote is one scraped currency tile. Raw fields keep the text exactly
// as displayed, the formatted counterparts only carry a value when the
// raw text parsed cleanly.
type Quote struct {
	Name                    *string  `json:"name"`
	BuyPrice                *string  `json:"buyPrice"`
	SellPrice               *string  `json:"sellPrice"`
	SellPercentage          *string  `json:"sellPercentage"`
	BuyPriceFormatted       *float64 `json:"buyPriceFormatted"`
	SellPriceFormatted      *float64 `json:"sellPriceFormatted"`
	SellPercentageFormatted *float64 `json:"sellPercentageFormatted"`
}

// SyncRecord is the persisted status document for this source. It is
// replaced wholesale at the end of every attempt.
type SyncRecord struct {
	Data         []Quote    `json:"data"`
	SyncError    *bool      `json:"syncError"`
	SyncErrorMsg *string    `json:"syncErrorMsg"`
	SyncDate     *time.Time `json:"syncDate"`
}
