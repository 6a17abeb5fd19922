package state

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
)

// Event is a tagged state change accepted by Reduce.
type Event interface {
	isEvent()
}

// PeripheralsChanged carries the full catalog as stored locally.
type PeripheralsChanged struct {
	Peripherals []catalog.Peripheral
}

// FavoritesChanged carries the favorited peripherals.
type FavoritesChanged struct {
	Favorites []catalog.Peripheral
}

// HistoryChanged carries history joined with peripherals, most recent first.
type HistoryChanged struct {
	Items []catalog.HistoryItem
}

// CategoriesLoaded carries the category list reported by the catalog source
// (or derived from the store when the source failed). The list is shown
// sorted; an empty list is ignored.
type CategoriesLoaded struct {
	Categories []string
	Remote     bool
}

// RefreshStarted marks the beginning of a sync.
type RefreshStarted struct{}

// RefreshFinished marks the end of a sync. Err is nil on success.
type RefreshFinished struct {
	Err error
	At  time.Time
}

// ErrorReported surfaces a failure from any other operation.
type ErrorReported struct {
	Err error
}

// ErrorDismissed clears the error message.
type ErrorDismissed struct{}

// SearchChanged replaces the search term.
type SearchChanged struct {
	Term string
}

// CategorySelected replaces the category filter.
type CategorySelected struct {
	Category Selection
}

// BrandSelected replaces the brand filter.
type BrandSelected struct {
	Brand Selection
}

// PriceRangeChanged sets the selected price sub-range. It is normalized
// against the current bounds before use. {0, 0} is the unset range and
// disables price filtering, even when the bounds start at 0, so there is
// no way to select only free items.
type PriceRangeChanged struct {
	Lo decimal.Decimal
	Hi decimal.Decimal
}

// FeatureToggled flips one feature toggle.
type FeatureToggled struct {
	Feature Feature
}

// FiltersCleared resets all filters and widens the price range to the bounds.
type FiltersCleared struct{}

// ComparisonToggled adds or removes an id from the comparison selection.
type ComparisonToggled struct {
	ID string
}

// ComparisonRemoved removes an id from the comparison selection.
type ComparisonRemoved struct {
	ID string
}

// ComparisonCleared empties the comparison selection.
type ComparisonCleared struct{}

func (PeripheralsChanged) isEvent() {}
func (FavoritesChanged) isEvent() {}
func (HistoryChanged) isEvent() {}
func (CategoriesLoaded) isEvent() {}
func (RefreshStarted) isEvent() {}
func (RefreshFinished) isEvent() {}
func (ErrorReported) isEvent() {}
func (ErrorDismissed) isEvent() {}
func (SearchChanged) isEvent() {}
func (CategorySelected) isEvent() {}
func (BrandSelected) isEvent() {}
func (PriceRangeChanged) isEvent() {}
func (FeatureToggled) isEvent() {}
func (FiltersCleared) isEvent() {}
func (ComparisonToggled) isEvent() {}
func (ComparisonRemoved) isEvent() {}
func (ComparisonCleared) isEvent() {}
