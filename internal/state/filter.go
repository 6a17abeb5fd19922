package state

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
)

// Filter returns the peripherals matching c, sorted by name. Predicates run in
// a fixed order: category, brand, search, price, wireless, RGB, mechanical.
// ps is not modified.
func Filter(ps []catalog.Peripheral, c FilterCriteria) []catalog.Peripheral {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]catalog.Peripheral, 0, len(ps))
	for _, p := range ps {
		if !c.Category.Matches(p.Category) || !c.Brand.Matches(p.Brand) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if !c.Range.IsUnset() && !c.Range.Contains(p.Price) {
			continue
		}
		if c.WirelessOnly && !p.HasFeature(FeatureWireless.Tags()...) {
			continue
		}
		if c.RGBOnly && !p.HasFeature(FeatureRGB.Tags()...) {
			continue
		}
		if c.MechanicalOnly && !p.HasFeature(FeatureMechanical.Tags()...) {
			continue
		}
		out = append(out, p)
	}
	SortByName(out)
	return out
}

// SortByName orders ps by name, byte-wise and stable.
func SortByName(ps []catalog.Peripheral) {
	slices.SortStableFunc(ps, func(a, b catalog.Peripheral) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func matchesSearch(p catalog.Peripheral, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// PriceBounds returns [min, max] over ps, or the (0,0) sentinel when empty.
func PriceBounds(ps []catalog.Peripheral) PriceRange {
	if len(ps) == 0 {
		return PriceRange{}
	}
	lo, hi := ps[0].Price, ps[0].Price
	for _, p := range ps[1:] {
		if p.Price.LessThan(lo) {
			lo = p.Price
		}
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	return PriceRange{Lo: lo, Hi: hi}
}

// NormalizeRange fits current into bounds. An unset range snaps to bounds;
// otherwise each endpoint is clamped and hi is raised to lo if they cross.
func NormalizeRange(current, bounds PriceRange) PriceRange {
	if current.IsUnset() {
		return bounds
	}
	lo := clamp(current.Lo, bounds.Lo, bounds.Hi)
	hi := clamp(current.Hi, bounds.Lo, bounds.Hi)
	if lo.GreaterThan(hi) {
		hi = lo
	}
	return PriceRange{Lo: lo, Hi: hi}
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
