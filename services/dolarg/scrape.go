package dolarg

import (
	"commander-backend/lib/htmlutil"
	"commander-backend/lib/moneyfmt"

	"github.com/PuerkitoBio/goquery"
)

const parentSelector = "div.tile.is-parent.is-7.is-vertical"
const childSelector = "div.tile.is-child"

func textOrNil(sel *goquery.Selection) *string {
	text := htmlutil.SelectionText(sel)
	if text == "" {
		return nil
	}
	return &text
}

// ExtractQuotes walks the quote tiles of a rendered page. A page with no
// matching tiles yields an empty slice, a tile with missing sub-nodes
// yields nil fields, neither is an error.
func ExtractQuotes(doc *goquery.Document) []Quote {
	data := []Quote{}

	doc.Find(parentSelector + " " + childSelector).Each(func(_ int, tile *goquery.Selection) {
		name := textOrNil(tile.Find(".title .titleText"))

		values := tile.Find(".values")
		buy := values.Find(".compra")
		sell := values.Find(".venta")

		buyPrice := textOrNil(buy.Find(".val"))
		sellPrice := textOrNil(sell.Find(".venta-wrapper .val"))
		sellPercentage := textOrNil(sell.Find(".var-porcentaje div"))

		quote := Quote{
			Name:           name,
			BuyPrice:       buyPrice,
			SellPrice:      sellPrice,
			SellPercentage: sellPercentage,
		}
		if buyPrice != nil {
			quote.BuyPriceFormatted = moneyfmt.ParseCurrency(*buyPrice)
		}
		if sellPrice != nil {
			quote.SellPriceFormatted = moneyfmt.ParseCurrency(*sellPrice)
		}
		if sellPercentage != nil {
			quote.SellPercentageFormatted = moneyfmt.ParsePercentage(*sellPercentage)
		}

		data = append(data, quote)
	})

	return data
}
