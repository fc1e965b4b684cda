package catalog

import (
	"github.com/alimikegami/storefront-service/internal/domain"
)

// Browser holds one shopper's browsing session over a product set. Every state change bumps the
// generation so results computed for an older snapshot can be told apart and dropped.
//
// A Browser is not safe for concurrent use.
type Browser struct {
	products   []domain.Product
	bounds     Bounds
	category   string
	priceRange PriceRange
	query      QueryState
	generation uint64
}

func NewBrowser(products []domain.Product, query QueryState) *Browser {
	b := &Browser{query: query}
	b.SetProducts(products)
	b.priceRange = b.bounds.Full()
	return b
}

// RestoreBrowser rebuilds a session from state carried by a request. Unlike the setters it
// keeps the requested page; View still sends an out-of-range page back to page 1.
func RestoreBrowser(products []domain.Product, category string, r PriceRange, query QueryState) *Browser {
	b := NewBrowser(products, query)
	b.category = category
	b.priceRange = b.bounds.Clamp(r)
	return b
}

// SetProducts swaps the product set and keeps the price range inside the new bounds.
func (b *Browser) SetProducts(products []domain.Product) {
	b.products = products
	b.bounds = PriceBounds(products)
	b.priceRange = b.bounds.Clamp(b.priceRange)
	b.generation++
}

// SelectCategory toggles category: selecting the active one clears the filter.
func (b *Browser) SelectCategory(category string) {
	if b.category == category {
		b.category = ""
	} else {
		b.category = category
	}
	b.query.Page = 1
	b.generation++
}

func (b *Browser) SetPriceRange(r PriceRange) {
	b.priceRange = b.bounds.Clamp(r)
	b.query.Page = 1
	b.generation++
}

func (b *Browser) SetSort(key SortKey) {
	b.query.Sort = key
	b.query.Page = 1
	b.generation++
}

func (b *Browser) SetPage(page int) {
	b.query.Page = page
	b.generation++
}

// Reset restores the default view: all categories, full price bounds, name order, first page.
func (b *Browser) Reset() {
	b.category = ""
	b.priceRange = b.bounds.Full()
	b.query = DefaultQueryState
	b.generation++
}

// View computes the current page. When the stored page no longer exists the session is moved
// back to page 1 before the result is returned.
func (b *Browser) View() Result {
	res := Apply(b.products, b.state())
	if res.PageOutOfRange {
		b.query.Page = 1
		b.generation++
		res = Apply(b.products, b.state())
	}
	return res
}

func (b *Browser) state() State {
	return State{
		Category:   b.category,
		PriceRange: b.priceRange,
		Sort:       b.query.Sort,
		Page:       b.query.Page,
	}
}

func (b *Browser) Bounds() Bounds         { return b.bounds }
func (b *Browser) Category() string       { return b.category }
func (b *Browser) PriceRange() PriceRange { return b.priceRange }
func (b *Browser) Query() QueryState      { return b.query }
func (b *Browser) Generation() uint64     { return b.generation }

// IsCurrent reports whether a result computed at generation gen still matches the session.
func (b *Browser) IsCurrent(gen uint64) bool {
	return gen == b.generation
}
