// Package seo renders the sitemap and schema.org metadata for catalog pages.
package seo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is a sitemap change frequency.
type ChangeFreq string

const (
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
)

// URL is one sitemap entry.
type URL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// URLSet is the sitemap document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type page struct {
	path     string
	freq     ChangeFreq
	priority float64
}

var staticPages = []page{
	{"/", Weekly, 1},
	{"/cart/", Monthly, 0.8},
	{"/checkout/", Monthly, 0.7},
	{"/checkout/success/", Monthly, 0.5},
	{"/imprint/", Yearly, 0.3},
	{"/terms/", Yearly, 0.3},
	{"/privacy/", Yearly, 0.3},
	{"/equipment/", Monthly, 0.4},
	{"/charts/", Monthly, 0.4},
	{"/packages/", Monthly, 0.4},
	{"/carts/", Monthly, 0.4},
	{"/about/", Monthly, 0.4},
	{"/contact/", Monthly, 0.4},
}

var entryPriority = map[domain.Category]float64{
	domain.CategoryCarts:     0.9,
	domain.CategoryEquipment: 0.9,
	domain.CategoryPackages:  0.95,
}

// EntryPath is the site path of a catalog entry's page.
func EntryPath(e domain.CatalogEntry) string {
	return fmt.Sprintf("/%s/%s/", e.Category, e.ID)
}

// BuildSitemap lists the static pages followed by every catalog entry.
func BuildSitemap(baseURL string, cat *catalog.Catalog, lastMod time.Time) URLSet {
	base := strings.TrimRight(baseURL, "/")
	mod := lastMod.UTC().Format("2006-01-02")

	set := URLSet{XMLNS: sitemapNS}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        base + p.path,
			LastMod:    mod,
			ChangeFreq: p.freq,
			Priority:   formatPriority(p.priority),
		})
	}
	for _, e := range cat.All() {
		set.URLs = append(set.URLs, URL{
			Loc:        base + EntryPath(e),
			LastMod:    mod,
			ChangeFreq: Weekly,
			Priority:   formatPriority(entryPriority[e.Category]),
		})
	}
	return set
}

// WriteSitemap encodes the sitemap as indented XML with the XML header.
func WriteSitemap(w io.Writer, set URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return enc.Flush()
}

func formatPriority(p float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
}
