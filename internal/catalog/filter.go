package catalog

import (
	"slices"
	"strings"

	"github.com/ArpanNarula/Shop-Assesment/internal/models"
)

// Apply derives the displayed product sequence from the full catalog and
// the current filter state. It never mutates products: the result is a
// fresh slice, filtered then stable-sorted.
//
// Order of operations: case-folded substring match on title, exact
// (case-sensitive) category match, then price sort. The empty sort order
// preserves the filtered order.
func Apply(products []models.Product, f models.FilterState) []models.Product {
	result := make([]models.Product, 0, len(products))

	search := strings.ToLower(f.Search)
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case models.SortLowHigh:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		})
	case models.SortHighLow:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			switch {
			case a.Price > b.Price:
				return -1
			case a.Price < b.Price:
				return 1
			}
			return 0
		})
	}

	return result
}

// Categories returns the distinct category values across the full catalog,
// in first-seen order.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
