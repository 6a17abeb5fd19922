package state

import (
	"errors"
	"slices"

	"github.com/five82/perch/internal/catalog"
)

const (
	msgSyncFailed  = "failed to sync catalog"
	msgUnavailable = "catalog source unavailable, showing cached data"
)

// Reduce applies ev to s and returns the new state. It never mutates s.
func Reduce(s Snapshot, ev Event) Snapshot {
	switch e := ev.(type) {
	case PeripheralsChanged:
		s.Peripherals = catalog.ClonePeripherals(e.Peripherals)
		SortByName(s.Peripherals)
		s.Brands = catalog.Brands(s.Peripherals)
		if !s.remoteCategories {
			s.Categories = catalog.Categories(s.Peripherals)
		}
		s.Criteria.Bounds = PriceBounds(s.Peripherals)
		s.Criteria.Range = NormalizeRange(s.Criteria.Range, s.Criteria.Bounds)
		s.Comparison = pruneComparison(s.Comparison, s.Peripherals)
		s.Loading = false
		return refilter(s)

	case FavoritesChanged:
		s.Favorites = catalog.ClonePeripherals(e.Favorites)
		return s

	case HistoryChanged:
		s.History = cloneHistory(e.Items)
		return s

	case CategoriesLoaded:
		// An empty list keeps deriving categories from the catalog.
		if len(e.Categories) == 0 {
			return s
		}
		s.Categories = slices.Clone(e.Categories)
		slices.Sort(s.Categories)
		s.remoteCategories = e.Remote
		return s

	case RefreshStarted:
		s.Refreshing = true
		s.ErrorMessage = ""
		return s

	case RefreshFinished:
		s.Refreshing = false
		if e.Err != nil {
			s.ErrorMessage = errorMessage(e.Err)
			return s
		}
		s.ErrorMessage = ""
		s.LastUpdated = e.At
		return s

	case ErrorReported:
		if e.Err != nil {
			s.ErrorMessage = errorMessage(e.Err)
		}
		return s

	case ErrorDismissed:
		s.ErrorMessage = ""
		return s

	case SearchChanged:
		s.Criteria.Search = e.Term
		return refilter(s)

	case CategorySelected:
		s.Criteria.Category = e.Category
		return refilter(s)

	case BrandSelected:
		s.Criteria.Brand = e.Brand
		return refilter(s)

	case PriceRangeChanged:
		requested := PriceRange{Lo: e.Lo, Hi: e.Hi}
		if requested.IsUnset() {
			s.Criteria.Range = requested
		} else {
			s.Criteria.Range = NormalizeRange(requested, s.Criteria.Bounds)
		}
		return refilter(s)

	case FeatureToggled:
		s.Criteria = s.Criteria.withToggled(e.Feature)
		return refilter(s)

	case FiltersCleared:
		s.Criteria = FilterCriteria{Bounds: s.Criteria.Bounds, Range: s.Criteria.Bounds}
		return refilter(s)

	case ComparisonToggled:
		s.Comparison = toggleComparison(s.Comparison, e.ID)
		return s

	case ComparisonRemoved:
		s.Comparison = slices.DeleteFunc(slices.Clone(s.Comparison), func(id string) bool { return id == e.ID })
		return s

	case ComparisonCleared:
		s.Comparison = nil
		return s
	}
	return s
}

func refilter(s Snapshot) Snapshot {
	s.Filtered = Filter(s.Peripherals, s.Criteria)
	return s
}

func toggleComparison(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return slices.DeleteFunc(slices.Clone(ids), func(v string) bool { return v == id })
	}
	if len(ids) >= MaxCompared || id == "" {
		return ids
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

// pruneComparison keeps the ids still present in the catalog.
func pruneComparison(ids []string, ps []catalog.Peripheral) []string {
	if len(ids) == 0 {
		return ids
	}
	known := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		known[p.ID] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func errorMessage(err error) string {
	if errors.Is(err, catalog.ErrUnavailable) {
		return msgUnavailable
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgSyncFailed
}
