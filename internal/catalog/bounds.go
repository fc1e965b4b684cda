package catalog

import (
	"math"

	"github.com/alimikegami/storefront-service/internal/domain"
)

// FallbackBounds is used when no product carries a finite price.
var FallbackBounds = Bounds{Min: 0, Max: 1000}

type Bounds struct {
	Min float64 `json:"minPrice"`
	Max float64 `json:"maxPrice"`
}

type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// PriceBounds returns the slider bounds for products. A catalog with a single price point is
// widened by 10% of that price (at least 1) on both sides and never drops below 0.
func PriceBounds(products []domain.Product) Bounds {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range products {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			continue
		}
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}

	if math.IsInf(lo, 1) || math.IsInf(hi, -1) {
		return FallbackBounds
	}

	if lo == hi {
		pad := math.Max(1, math.Round(lo*0.1))
		return Bounds{Min: math.Max(0, lo-pad), Max: hi + pad}
	}

	return Bounds{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

func (b Bounds) Full() PriceRange {
	return PriceRange{Low: b.Min, High: b.Max}
}

// Clamp pulls both ends of r into the bounds and orders them low to high.
func (b Bounds) Clamp(r PriceRange) PriceRange {
	lo := math.Max(b.Min, math.Min(r.Low, b.Max))
	hi := math.Max(b.Min, math.Min(r.High, b.Max))
	if lo > hi {
		lo, hi = hi, lo
	}
	return PriceRange{Low: lo, High: hi}
}

// Contains reports whether price lies inside r, both ends inclusive. NaN never matches.
func (r PriceRange) Contains(price float64) bool {
	if math.IsNaN(price) {
		return false
	}
	return price >= r.Low && price <= r.High
}
