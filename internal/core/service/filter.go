package service

import (
	"slices"
	"strings"

	"github.com/niksmo/productlist/internal/core/domain"
)

// FilterProducts returns the products whose name or category contains
// query, ignoring case. Order is preserved. Empty query matches all.
func FilterProducts(ps []domain.Product, query string) []domain.Product {
	if query == "" {
		return slices.Clone(ps)
	}

	q := strings.ToLower(query)
	var out []domain.Product
	for _, p := range ps {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery)
}
