package catalog

import (
	"fmt"
	"strings"
)

// Categories is the fixed set of item categories, in canonical form.
var Categories = []string{
	"grocery",
	"produce",
	"dairy",
	"bakery",
	"beverage",
	"snacks",
	"household",
	"personal_care",
	"stationery",
	"other",
}

var categorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}()

// NormalizeCategory maps case- and spacing-insensitive input ("Personal Care",
// "DAIRY") to its canonical form, or errors if the category is not allowed.
func NormalizeCategory(raw string) (string, error) {
	canonical := strings.ToLower(strings.TrimSpace(raw))
	canonical = strings.ReplaceAll(canonical, " ", "_")
	canonical = strings.ReplaceAll(canonical, "-", "_")
	if _, ok := categorySet[canonical]; !ok {
		return "", fmt.Errorf("unknown category %q (allowed: %s)", raw, strings.Join(Categories, ", "))
	}
	return canonical, nil
}
