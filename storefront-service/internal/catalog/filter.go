package catalog

import (
	"strings"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

// AllCategories is the pseudo category that disables category filtering.
const AllCategories = "Todos"

// Filter keeps products in category whose name contains query, ignoring case.
// An empty category or AllCategories matches everything, as does a blank query.
func Filter(products []domain.Product, category, query string) []domain.Product {
	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists AllCategories first, then each distinct category in the
// order it first appears.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{AllCategories}
	for _, p := range products {
		if p.Category == "" || p.Category == AllCategories {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
