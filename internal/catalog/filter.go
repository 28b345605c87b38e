package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wildwestwallart/storefront-backend/pkg/enums"
)

// Price-range filtering and price sorting look at the acrylic price table
// only; that is the reference finish for the storefront.
const referenceFinish = enums.FinishAcrylic

var titleCollator = collate.New(language.English, collate.IgnoreCase)

// FilterProducts applies query text, category, finish and price-range
// predicates in that fixed order, then the requested sort. It never mutates
// its input; the default sort preserves the incoming order.
func FilterProducts(products []Product, query string, filters Filters) []Product {
	filtered := make([]Product, 0, len(products))
	filtered = append(filtered, products...)

	if query != "" {
		term := strings.ToLower(query)
		filtered = keep(filtered, func(p Product) bool {
			return matchesQuery(p, term)
		})
	}

	if filters.Category != "" {
		filtered = keep(filtered, func(p Product) bool {
			return p.Category == filters.Category
		})
	}

	if filters.Finish != "" {
		filtered = keep(filtered, func(p Product) bool {
			for _, finish := range p.AvailableFinishes {
				if finish == filters.Finish {
					return true
				}
			}
			return false
		})
	}

	if pr := filters.PriceRange; pr != nil {
		filtered = keep(filtered, func(p Product) bool {
			return p.Prices.AnyInRange(referenceFinish, pr.Min, pr.Max)
		})
	}

	sortProducts(filtered, filters.SortBy)
	return filtered
}

func matchesQuery(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortProducts(products []Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Prices.MinFor(referenceFinish) < products[j].Prices.MinFor(referenceFinish)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Prices.MaxFor(referenceFinish) > products[j].Prices.MaxFor(referenceFinish)
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedTime.After(products[j].CreatedTime)
		})
	case SortTitle:
		sort.SliceStable(products, func(i, j int) bool {
			return titleCollator.CompareString(products[i].Title, products[j].Title) < 0
		})
	}
}

func keep(products []Product, predicate func(Product) bool) []Product {
	kept := products[:0]
	for _, p := range products {
		if predicate(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
