// Package category holds the category label domain type and the tag
// association heuristic used across the site.
package category

import "strings"

// Category is a browsing label with a cover image. Recipes are not linked
// to categories by foreign key; association is by fuzzy tag matching only.
type Category struct {
	ID       string
	Name     string
	ImageURL string
}

// MatchesTags reports whether a recipe with the given tags belongs to this
// category. The match is a case-insensitive substring test in either
// direction ("Sobremesas" matches tag "sobremesa" and vice versa). This
// heuristic is deliberately loose and mirrors how the site has always
// grouped recipes; replacing it with exact matching would silently change
// category pages.
func (c Category) MatchesTags(tags []string) bool {
	name := strings.ToLower(c.Name)
	for _, tag := range tags {
		t := strings.ToLower(tag)
		if t == "" {
			continue
		}
		if strings.Contains(name, t) || strings.Contains(t, name) {
			return true
		}
	}
	return false
}
