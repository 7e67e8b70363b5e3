package seo

import (
	"strconv"
	"strings"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
)

const (
	schemaContext = "https://schema.org"
	businessName  = "SOL & SOCIAL - Party Rental Oceanside"
	brandName     = "SOL & SOCIAL"
)

// Thing carries the schema.org type marker shared by every node.
type Thing struct {
	Context string `json:"@context,omitempty"`
	Type    string `json:"@type"`
}

// Organization is a brand or seller node.
type Organization struct {
	Thing
	Name string `json:"name"`
}

// Offer is a schema.org Offer.
type Offer struct {
	Thing
	Price         string        `json:"price,omitempty"`
	PriceCurrency string        `json:"priceCurrency,omitempty"`
	Availability  string        `json:"availability,omitempty"`
	ItemCondition string        `json:"itemCondition,omitempty"`
	URL           string        `json:"url,omitempty"`
	Seller        *Organization `json:"seller,omitempty"`
	Position      int           `json:"position,omitempty"`
	ItemOffered   *Product      `json:"itemOffered,omitempty"`
}

// OfferCatalog groups component offers of a package.
type OfferCatalog struct {
	Thing
	Name            string  `json:"name"`
	ItemListElement []Offer `json:"itemListElement"`
}

// Product is a schema.org Product.
type Product struct {
	Thing
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	SKU         string        `json:"sku,omitempty"`
	Category    string        `json:"category,omitempty"`
	Brand       *Organization `json:"brand,omitempty"`
	Offers      *Offer        `json:"offers,omitempty"`
	IsRelatedTo *OfferCatalog `json:"isRelatedTo,omitempty"`
}

// ProductSchema builds the Product JSON-LD for an entry page. Packages also
// list their component items.
func ProductSchema(baseURL string, e domain.CatalogEntry, currency string) Product {
	base := strings.TrimRight(baseURL, "/")
	if currency == "" {
		currency = "USD"
	}

	p := Product{
		Thing:       Thing{Context: schemaContext, Type: "Product"},
		Name:        e.Name,
		Description: firstNonEmpty(e.FullDescription, e.Description),
		Image:       absolute(base, e.Image),
		SKU:         e.ID,
		Category:    categoryLabel(e),
		Brand:       &Organization{Thing: Thing{Type: "Brand"}, Name: brandName},
		Offers: &Offer{
			Thing:         Thing{Type: "Offer"},
			Price:         strconv.FormatInt(e.EffectivePrice(), 10),
			PriceCurrency: strings.ToUpper(currency),
			Availability:  "https://schema.org/InStock",
			ItemCondition: "https://schema.org/NewCondition",
			URL:           base + EntryPath(e),
			Seller:        &Organization{Thing: Thing{Type: "LocalBusiness"}, Name: businessName},
		},
	}

	if e.Category == domain.CategoryPackages && len(e.Items) > 0 {
		rel := &OfferCatalog{Thing: Thing{Type: "OfferCatalog"}, Name: "Package Components"}
		for i, name := range e.Items {
			rel.ItemListElement = append(rel.ItemListElement, Offer{
				Thing:       Thing{Type: "Offer"},
				Position:    i + 1,
				ItemOffered: &Product{Thing: Thing{Type: "Product"}, Name: name},
			})
		}
		p.IsRelatedTo = rel
	}
	return p
}

func categoryLabel(e domain.CatalogEntry) string {
	switch e.Category {
	case domain.CategoryCarts:
		return "Mobile Bar Cart Rental"
	case domain.CategoryPackages:
		return "Party Rental Package"
	}
	if e.SubCategory != "" {
		return "Party Equipment > " + e.SubCategory
	}
	return "Party Equipment"
}

func absolute(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return base + "/" + strings.TrimLeft(ref, "/")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
