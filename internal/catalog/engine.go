// Package catalog derives the visible storefront page from the full product set.
//
// Apply is a pure function of its inputs; Browser layers the interactive session rules
// (page resets, category toggling) on top of it.
package catalog

import (
	"cmp"
	"math"
	"slices"

	"github.com/alimikegami/storefront-service/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	PageSize        = 6
	UnknownCategory = "Unknown"
)

type SortKey string

const (
	SortNameAsc        SortKey = "name_asc"
	SortNameDesc       SortKey = "name_desc"
	SortPriceAsc       SortKey = "price_asc"
	SortPriceDesc      SortKey = "price_desc"
	SortPopularityDesc SortKey = "popularity_desc"
)

type State struct {
	Category   string
	PriceRange PriceRange
	Sort       SortKey
	Page       int
}

type Result struct {
	Filtered       []domain.Product
	Sorted         []domain.Product
	Visible        []domain.Product
	Categories     []string
	CategoryCounts map[string]int
	TotalPages     int
	CurrentPage    int
	// PageOutOfRange is set when the requested page exceeded TotalPages.
	PageOutOfRange bool
}

// Apply filters, sorts and paginates products according to state. products is never modified.
func Apply(products []domain.Product, state State) Result {
	res := Result{
		Categories:     Categories(products),
		CategoryCounts: CategoryCounts(products),
	}

	res.Filtered = Filter(products, state.Category, state.PriceRange)
	res.Sorted = Sort(res.Filtered, state.Sort)

	res.TotalPages = TotalPages(len(res.Sorted))
	res.PageOutOfRange = state.Page > res.TotalPages
	res.CurrentPage = min(max(state.Page, 1), res.TotalPages)

	start := (res.CurrentPage - 1) * PageSize
	end := min(start+PageSize, len(res.Sorted))
	res.Visible = slices.Clone(res.Sorted[start:end])
	if res.Visible == nil {
		res.Visible = []domain.Product{}
	}

	return res
}

// Categories returns the sorted distinct non-empty categories of the unfiltered list.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	slices.Sort(categories)
	return categories
}

// CategoryCounts counts products per category; an empty category is bucketed as "Unknown".
func CategoryCounts(products []domain.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		key := p.Category
		if key == "" {
			key = UnknownCategory
		}
		counts[key]++
	}
	return counts
}

// Filter keeps products matching category (empty matches all) whose price lies in r.
func Filter(products []domain.Product, category string, r PriceRange) []domain.Product {
	filtered := []domain.Product{}
	for _, p := range products {
		if !r.Contains(p.Price) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Sort returns a sorted copy. Unknown keys keep the input order.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []domain.Product{}
	}

	switch key {
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.English)
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			if key == SortNameDesc {
				a, b = b, a
			}
			return col.CompareString(a.Name, b.Name)
		})
	case SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortPopularityDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.RatingCount, a.RatingCount)
		})
	}

	return sorted
}

func TotalPages(count int) int {
	return max(1, int(math.Ceil(float64(count)/float64(PageSize))))
}
