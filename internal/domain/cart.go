package domain

import (
	"fmt"

	"github.com/alexanderdross/V0-Desiree/pkg/slug"
)

// Kind classifies a line item by the catalog it came from.
type Kind string

const (
	KindCart      Kind = "cart"
	KindEquipment Kind = "equipment"
	KindPackage   Kind = "package"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCart, KindEquipment, KindPackage:
		return true
	}
	return false
}

// LineItem is one entry in a visitor's cart. Prices are whole currency units.
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
	Kind     Kind   `json:"type"`
	Variant  string `json:"selectedColor,omitempty"`
}

// Matches reports whether the line has the given identity.
func (li LineItem) Matches(id, variant string) bool {
	return li.ID == id && li.Variant == variant
}

// Subtotal returns price times quantity.
func (li LineItem) Subtotal() int64 {
	return li.Price * int64(li.Quantity)
}

// VariantID builds the line id used for a product carrying a selected color.
func VariantID(productID, variant string) string {
	if variant == "" {
		return productID
	}
	return productID + ":" + slug.Generate(variant)
}

// VariantName builds the display name for a product carrying a selected color.
func VariantName(name, variant string) string {
	if variant == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, variant)
}

// Cart is a read-only snapshot of a visitor's line items.
type Cart struct {
	VisitorID string     `json:"visitor_id,omitempty"`
	Items     []LineItem `json:"items"`
}

// TotalPrice sums price times quantity over all lines.
func (c Cart) TotalPrice() int64 {
	return TotalPrice(c.Items)
}

// TotalItems sums the quantities over all lines.
func (c Cart) TotalItems() int {
	return TotalItems(c.Items)
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalPrice sums price times quantity.
func TotalPrice(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// TotalItems sums quantities.
func TotalItems(items []LineItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// FindIndex returns the index of the line matching id and variant, or -1.
func FindIndex(items []LineItem, id, variant string) int {
	for i := range items {
		if items[i].Matches(id, variant) {
			return i
		}
	}
	return -1
}

// ToMinorUnits converts whole currency units to the smallest unit (cents).
func ToMinorUnits(amount int64) int64 {
	return amount * 100
}
