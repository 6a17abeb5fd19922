// Package state holds the UI-facing catalog state for perch.
//
// # Overview
//
// The package combines three store streams (peripherals, favorites, history)
// with the transient filter state of the operator into one aggregate
// Snapshot. Every change arrives as a tagged Event, and Reduce derives the
// next Snapshot from the previous one. Reduce is pure, so the whole engine can
// be tested without a database or a terminal.
//
// # Events
//
//	Stream events (from the app pump):
//	  PeripheralsChanged   full catalog, recompute bounds, prune comparison
//	  FavoritesChanged     favorites list only
//	  HistoryChanged       joined history list
//	  CategoriesLoaded     category list, remote lists stick
//
//	Sync events:
//	  RefreshStarted       Refreshing = true, error cleared
//	  RefreshFinished      Refreshing = false, error or LastUpdated
//
//	Filter edits (merge into FilterCriteria, then re-filter):
//	  SearchChanged, CategorySelected, BrandSelected,
//	  PriceRangeChanged, FeatureToggled, FiltersCleared
//
//	Comparison:
//	  ComparisonToggled, ComparisonRemoved, ComparisonCleared
//
// # Filtering
//
// Filter applies its predicates in a fixed order and ANDs them together:
// category, brand, search, price, wireless, RGB, mechanical. Category and
// brand match case-insensitively. The search term is trimmed and matched as a
// case-insensitive substring of name, brand or description. Prices compare at
// cent precision. The result is sorted by name with strings.Compare, stable,
// so equal names keep catalog order.
//
// # Price range
//
// Bounds is the [min, max] price of the full catalog, or (0,0) when it is
// empty. Range is the selected sub-range. The (0,0) range is a sentinel that
// matches every price. Whenever the catalog changes NormalizeRange runs before
// filtering:
//
//	Range unset      -> Range = Bounds
//	otherwise        -> clamp Lo and Hi into Bounds, then Hi = max(Lo, Hi)
//
// FiltersCleared resets every filter and sets Range to the current Bounds,
// not to the sentinel.
//
// # Comparison
//
// The comparison selection holds at most MaxCompared ids in insertion order.
// Toggling an absent id at capacity is ignored. The selection is pruned to
// ids present in the full catalog on every PeripheralsChanged. Favorites never
// prune it, so an item can be compared without being favorited.
//
// # Concurrency
//
// Store serializes Dispatch behind a mutex, so concurrent streams cannot lose
// each other's updates. Snapshot returns deep copies. Subscribe hands out a
// buffered notification channel; bursts of dispatches collapse into a single
// pending signal and readers fetch the latest Snapshot themselves.
package state
