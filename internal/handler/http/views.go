package http

import (
	"github.com/leekchan/accounting"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
)

// Prices are whole dollars, so the display format drops the cents.
var money = accounting.Accounting{Symbol: "$", Precision: 0, Thousand: ",", Decimal: "."}

// FormatPrice renders a whole-dollar amount the way the storefront shows it.
func FormatPrice(amount int64) string {
	return money.FormatMoney(amount)
}

type lineItemView struct {
	domain.LineItem
	DisplayPrice    string `json:"displayPrice"`
	DisplaySubtotal string `json:"displaySubtotal"`
}

type cartView struct {
	Items        []lineItemView `json:"items"`
	TotalItems   int            `json:"totalItems"`
	TotalPrice   int64          `json:"totalPrice"`
	DisplayTotal string         `json:"displayTotal"`
}

func newCartView(c domain.Cart) cartView {
	items := make([]lineItemView, 0, len(c.Items))
	for _, li := range c.Items {
		items = append(items, lineItemView{
			LineItem:        li,
			DisplayPrice:    FormatPrice(li.Price),
			DisplaySubtotal: FormatPrice(li.Subtotal()),
		})
	}
	total := c.TotalPrice()
	return cartView{
		Items:        items,
		TotalItems:   c.TotalItems(),
		TotalPrice:   total,
		DisplayTotal: FormatPrice(total),
	}
}

type entryView struct {
	domain.CatalogEntry
	DisplayPrice string `json:"displayPrice"`
}

func newEntryView(e domain.CatalogEntry) entryView {
	return entryView{CatalogEntry: e, DisplayPrice: FormatPrice(e.EffectivePrice())}
}

func newEntryViews(entries []domain.CatalogEntry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntryView(e))
	}
	return out
}
