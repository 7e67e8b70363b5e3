// Package slug builds the URL-safe identifiers used for catalog entries and
// color variants.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	valid    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Accented letters that show up in color and product names.
var fold = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ñ", "n", "ç", "c",
	"&", " and ",
)

// Generate lowercases name and joins its alphanumeric runs with hyphens.
//
//	"Navy Blue"        -> "navy-blue"
//	"Sol & Social"     -> "sol-and-social"
//	"  Café Crème! "   -> "cafe-creme"
func Generate(name string) string {
	s := fold.Replace(strings.ToLower(strings.TrimSpace(name)))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already a slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}
