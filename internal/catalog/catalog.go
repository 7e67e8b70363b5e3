// Package catalog serves the compiled-in rental product definitions.
package catalog

import (
	"fmt"
	"strings"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
	"github.com/alexanderdross/V0-Desiree/pkg/slug"
)

// Catalog is an immutable, indexed set of product entries.
type Catalog struct {
	entries map[domain.Category][]domain.CatalogEntry
	index   map[domain.Category]map[string]int
}

// New indexes the given entries. Ids must be unique within a category.
func New(entries ...domain.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[domain.Category][]domain.CatalogEntry),
		index:   make(map[domain.Category]map[string]int),
	}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has no id", e.Name)
		}
		if !slug.Valid(e.ID) {
			return nil, fmt.Errorf("catalog entry id %q is not a slug", e.ID)
		}
		if _, err := domain.ParseCategory(string(e.Category)); err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", e.ID, err)
		}
		if e.EffectivePrice() < 0 {
			return nil, fmt.Errorf("catalog entry %s: negative price", e.ID)
		}
		idx := c.index[e.Category]
		if idx == nil {
			idx = make(map[string]int)
			c.index[e.Category] = idx
		}
		if _, dup := idx[e.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %s/%s", e.Category, e.ID)
		}
		idx[e.ID] = len(c.entries[e.Category])
		c.entries[e.Category] = append(c.entries[e.Category], e.Clone())
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := New(defaultEntries()...)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in data: %v", err))
	}
	return c
}

// ParseCategory resolves a category path segment.
func ParseCategory(s string) (domain.Category, error) {
	return domain.ParseCategory(s)
}

// FindByID looks up an entry. A miss is reported as false, never an error.
func (c *Catalog) FindByID(category domain.Category, id string) (domain.CatalogEntry, bool) {
	i, ok := c.index[category][id]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return c.entries[category][i].Clone(), true
}

// List returns copies of every entry in a category, in catalog order.
func (c *Catalog) List(category domain.Category) []domain.CatalogEntry {
	src := c.entries[category]
	out := make([]domain.CatalogEntry, len(src))
	for i, e := range src {
		out[i] = e.Clone()
	}
	return out
}

// Filter lists a category restricted to one sub category. An empty or "All"
// sub category returns the whole list.
func (c *Catalog) Filter(category domain.Category, sub string) []domain.CatalogEntry {
	all := c.List(category)
	if sub == "" || strings.EqualFold(sub, "all") {
		return all
	}
	out := all[:0]
	for _, e := range all {
		if strings.EqualFold(e.SubCategory, sub) {
			out = append(out, e)
		}
	}
	return out
}

// SubCategories returns the distinct sub categories of a category in first-seen order.
func (c *Catalog) SubCategories(category domain.Category) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range c.entries[category] {
		if e.SubCategory == "" || seen[e.SubCategory] {
			continue
		}
		seen[e.SubCategory] = true
		out = append(out, e.SubCategory)
	}
	return out
}

// All returns every entry across categories.
func (c *Catalog) All() []domain.CatalogEntry {
	var out []domain.CatalogEntry
	for _, cat := range domain.Categories {
		out = append(out, c.List(cat)...)
	}
	return out
}

// Resolve turns a catalog reference into a cart candidate line.
//
// Equipment that comes in colors needs one of them; the line id then carries
// the color so each color is its own line. Packages are charged their bundle price.
func (c *Catalog) Resolve(category domain.Category, id, color string, quantity int) (domain.LineItem, error) {
	entry, ok := c.FindByID(category, id)
	if !ok {
		return domain.LineItem{}, apperrors.NotFound(string(category.Kind()), id)
	}
	if quantity < 0 {
		return domain.LineItem{}, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity == 0 {
		quantity = 1
	}

	item := domain.LineItem{
		ID:       entry.ID,
		Name:     entry.Name,
		Price:    entry.EffectivePrice(),
		Quantity: quantity,
		Image:    entry.Image,
		Kind:     category.Kind(),
	}

	if len(entry.Colors) > 0 {
		if strings.TrimSpace(color) == "" {
			return domain.LineItem{}, apperrors.InvalidInput("please select a color")
		}
		canonical, ok := entry.HasColor(color)
		if !ok {
			return domain.LineItem{}, apperrors.InvalidInput(fmt.Sprintf("color %q is not available for %s", color, entry.Name))
		}
		item.ID = domain.VariantID(entry.ID, canonical)
		item.Name = domain.VariantName(entry.Name, canonical)
		item.Variant = canonical
	}

	return item, nil
}
