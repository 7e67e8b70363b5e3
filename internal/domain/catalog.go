package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Category names one of the three rentable catalogs.
type Category string

const (
	CategoryCarts     Category = "carts"
	CategoryEquipment Category = "equipment"
	CategoryPackages  Category = "packages"
)

// Categories lists every catalog in display order.
var Categories = []Category{CategoryCarts, CategoryEquipment, CategoryPackages}

// ParseCategory accepts the plural path segment and the singular line-item kind.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "carts", "cart":
		return CategoryCarts, nil
	case "equipment":
		return CategoryEquipment, nil
	case "packages", "package":
		return CategoryPackages, nil
	}
	return "", fmt.Errorf("unknown catalog category %q", s)
}

// Kind maps a catalog to the kind carried by its line items.
func (c Category) Kind() Kind {
	switch c {
	case CategoryEquipment:
		return KindEquipment
	case CategoryPackages:
		return KindPackage
	default:
		return KindCart
	}
}

// RentalDetails holds the package terms shown on a package page.
type RentalDetails struct {
	MinimumRental    string `json:"minimumRental"`
	DeliveryIncluded string `json:"deliveryIncluded"`
	SetupTime        string `json:"setupTime"`
	PickupTime       string `json:"pickupTime"`
}

// CatalogEntry is a rentable product definition. Prices are whole dollars per day.
type CatalogEntry struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	FullDescription string         `json:"fullDescription"`
	Price           int64          `json:"price"`
	Image           string         `json:"image"`
	Category        Category       `json:"category"`
	SubCategory     string         `json:"subCategory,omitempty"`
	Features        []string       `json:"features,omitempty"`
	Specifications  []string       `json:"specifications,omitempty"`
	Included        []string       `json:"included,omitempty"`
	Colors          []string       `json:"colors,omitempty"`
	PackagePrice    int64          `json:"packagePrice,omitempty"`
	OriginalPrice   int64          `json:"originalPrice,omitempty"`
	Savings         int64          `json:"savings,omitempty"`
	Items           []string       `json:"items,omitempty"`
	IdealFor        []string       `json:"idealFor,omitempty"`
	RentalDetails   *RentalDetails `json:"rentalDetails,omitempty"`
	Popular         bool           `json:"popular,omitempty"`
}

// EffectivePrice is the per-day amount charged for one unit of the entry.
func (e CatalogEntry) EffectivePrice() int64 {
	if e.Category == CategoryPackages && e.PackagePrice > 0 {
		return e.PackagePrice
	}
	return e.Price
}

// HasColor reports whether color is one of the entry's variants, ignoring case.
// It returns the canonical spelling.
func (e CatalogEntry) HasColor(color string) (string, bool) {
	for _, c := range e.Colors {
		if strings.EqualFold(c, strings.TrimSpace(color)) {
			return c, true
		}
	}
	return "", false
}

// Clone returns a deep copy so callers cannot mutate the compiled-in data.
func (e CatalogEntry) Clone() CatalogEntry {
	out := e
	out.Features = slices.Clone(e.Features)
	out.Specifications = slices.Clone(e.Specifications)
	out.Included = slices.Clone(e.Included)
	out.Colors = slices.Clone(e.Colors)
	out.Items = slices.Clone(e.Items)
	out.IdealFor = slices.Clone(e.IdealFor)
	if e.RentalDetails != nil {
		rd := *e.RentalDetails
		out.RentalDetails = &rd
	}
	return out
}
