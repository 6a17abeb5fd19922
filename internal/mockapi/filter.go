package mockapi

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
)

// filterPeripherals applies the list query parameters in a fixed order:
// category, brand, search, minPrice, maxPrice, then every feature. Blank or
// unparseable parameters are ignored.
func filterPeripherals(all []catalog.Peripheral, q url.Values) []catalog.Peripheral {
	current := all

	if category := strings.TrimSpace(q.Get("category")); category != "" {
		current = keep(current, func(p catalog.Peripheral) bool {
			return strings.EqualFold(p.Category, category)
		})
	}
	if brand := strings.TrimSpace(q.Get("brand")); brand != "" {
		current = keep(current, func(p catalog.Peripheral) bool {
			return strings.EqualFold(p.Brand, brand)
		})
	}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		needle := strings.ToLower(search)
		current = keep(current, func(p catalog.Peripheral) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Brand), needle)
		})
	}
	if lo, ok := parsePrice(q.Get("minPrice")); ok {
		current = keep(current, func(p catalog.Peripheral) bool {
			return p.Price.GreaterThanOrEqual(lo)
		})
	}
	if hi, ok := parsePrice(q.Get("maxPrice")); ok {
		current = keep(current, func(p catalog.Peripheral) bool {
			return p.Price.LessThanOrEqual(hi)
		})
	}
	if features := q["feature"]; len(features) > 0 {
		current = keep(current, func(p catalog.Peripheral) bool {
			for _, f := range features {
				if !p.HasFeature(f) {
					return false
				}
			}
			return true
		})
	}
	return current
}

func keep(ps []catalog.Peripheral, pred func(catalog.Peripheral) bool) []catalog.Peripheral {
	out := make([]catalog.Peripheral, 0, len(ps))
	for _, p := range ps {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
