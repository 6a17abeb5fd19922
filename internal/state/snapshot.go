package state

import (
	"slices"
	"time"

	"github.com/five82/perch/internal/catalog"
)

// MaxCompared is the capacity of the comparison selection.
const MaxCompared = 3

// Snapshot is the UI-facing catalog state at a point in time.
type Snapshot struct {
	Peripherals []catalog.Peripheral // full catalog, name order
	Filtered    []catalog.Peripheral
	Favorites   []catalog.Peripheral
	History     []catalog.HistoryItem
	Categories  []string
	Brands      []string
	// Comparison holds selected ids in the order they were added.
	Comparison []string
	Criteria   FilterCriteria

	Loading      bool // no catalog received yet
	Refreshing   bool
	ErrorMessage string
	LastUpdated  time.Time

	remoteCategories bool
}

// Initial returns the state before any data has arrived.
func Initial() Snapshot {
	return Snapshot{Loading: true}
}

// InComparison reports whether id is selected for comparison.
func (s Snapshot) InComparison(id string) bool {
	return slices.Contains(s.Comparison, id)
}

// Lookup finds a peripheral in the full catalog.
func (s Snapshot) Lookup(id string) (catalog.Peripheral, bool) {
	for _, p := range s.Peripherals {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Peripheral{}, false
}

// Compared returns the selected peripherals in selection order. Ids missing
// from the catalog are skipped.
func (s Snapshot) Compared() []catalog.Peripheral {
	out := make([]catalog.Peripheral, 0, len(s.Comparison))
	for _, id := range s.Comparison {
		if p, ok := s.Lookup(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// IsFavorite reports whether id is in the favorites list.
func (s Snapshot) IsFavorite(id string) bool {
	for _, p := range s.Favorites {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.Peripherals = catalog.ClonePeripherals(s.Peripherals)
	dup.Filtered = catalog.ClonePeripherals(s.Filtered)
	dup.Favorites = catalog.ClonePeripherals(s.Favorites)
	dup.History = cloneHistory(s.History)
	dup.Categories = slices.Clone(s.Categories)
	dup.Brands = slices.Clone(s.Brands)
	dup.Comparison = slices.Clone(s.Comparison)
	return dup
}

func cloneHistory(items []catalog.HistoryItem) []catalog.HistoryItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.HistoryItem, len(items))
	for i, item := range items {
		dup[i] = catalog.HistoryItem{Peripheral: item.Peripheral.Clone(), ViewedAt: item.ViewedAt}
	}
	return dup
}

// SpecUnion returns every spec label across ps. Labels appear in first-seen
// order, walking each peripheral's labels alphabetically.
func SpecUnion(ps []catalog.Peripheral) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, p := range ps {
		for _, k := range p.SpecKeys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}
