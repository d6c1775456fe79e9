package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders accepted by the product filter pipeline.
const (
	SortNameAsc   = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ProductFilter holds the criteria for filtering and sorting a product list.
// Zero values mean "no constraint": CategoryIDs empty matches all categories,
// Brand empty or "all" matches all brands, PriceMax 0 means unbounded.
type ProductFilter struct {
	CategoryIDs []int64
	Brand       string
	PriceMin    int64
	PriceMax    int64
	Search      string
	Sort        string
}

// bgCollator compares names under Bulgarian collation so Cyrillic product
// names order the way the storefront displays them.
var bgCollator = collate.New(language.Bulgarian)

// FilterProducts returns the products matching the filter, sorted per the
// filter's sort order (name ascending by default). The sort is stable: equal
// keys preserve input relative order. The input slice is not modified.
func FilterProducts(products []Product, f ProductFilter) []Product {
	out := make([]Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	categorySet := make(map[int64]struct{}, len(f.CategoryIDs))
	for _, id := range f.CategoryIDs {
		categorySet[id] = struct{}{}
	}

	for _, p := range products {
		if len(categorySet) > 0 {
			if _, ok := categorySet[p.CategoryID]; !ok {
				continue
			}
		}
		if f.Brand != "" && f.Brand != "all" && p.Brand != f.Brand {
			continue
		}
		if p.Price < f.PriceMin {
			continue
		}
		if f.PriceMax > 0 && p.Price > f.PriceMax {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

// matchesSearch reports whether the lowercased query is a substring of the
// product name, brand, or description.
func matchesSearch(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func sortProducts(products []Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return bgCollator.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// Brands returns the distinct brands present in the product list, sorted
// under Bulgarian collation.
func Brands(products []Product) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.SliceStable(brands, func(i, j int) bool {
		return bgCollator.CompareString(brands[i], brands[j]) < 0
	})
	return brands
}
