package catalog

import (
	"errors"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound reports an unknown peripheral id.
	ErrNotFound = errors.New("peripheral not found")
	// ErrUnavailable reports a transient catalog source failure.
	ErrUnavailable = errors.New("catalog source unavailable")
)

// Peripheral is a catalog item as shown to the user.
type Peripheral struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	ImageURL    string            `json:"imageUrl"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs"`
	Features    []string          `json:"features"`
	IsFavorite  bool              `json:"-"`
}

// HasFeature reports whether any feature tag equals one of names, ignoring case.
func (p Peripheral) HasFeature(names ...string) bool {
	for _, feature := range p.Features {
		for _, name := range names {
			if strings.EqualFold(feature, name) {
				return true
			}
		}
	}
	return false
}

// Clone returns a copy that shares no maps or slices with p.
func (p Peripheral) Clone() Peripheral {
	dup := p
	if p.Specs != nil {
		dup.Specs = maps.Clone(p.Specs)
	}
	if p.Features != nil {
		dup.Features = slices.Clone(p.Features)
	}
	return dup
}

// SpecKeys returns the spec labels sorted for stable display.
func (p Peripheral) SpecKeys() []string {
	keys := make([]string, 0, len(p.Specs))
	for k := range p.Specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HistoryEntry records the last time a peripheral was viewed.
type HistoryEntry struct {
	ID           int64
	PeripheralID string
	ViewedAt     int64 // milliseconds since epoch
}

// ViewedTime returns ViewedAt as a time.Time.
func (h HistoryEntry) ViewedTime() time.Time {
	return time.UnixMilli(h.ViewedAt)
}

// HistoryItem joins a history entry with the peripheral it points at.
type HistoryItem struct {
	Peripheral Peripheral
	ViewedAt   time.Time
}

// Categories returns the sorted distinct categories of ps.
func Categories(ps []Peripheral) []string {
	return distinct(ps, func(p Peripheral) string { return p.Category })
}

// Brands returns the sorted distinct brands of ps.
func Brands(ps []Peripheral) []string {
	return distinct(ps, func(p Peripheral) string { return p.Brand })
}

func distinct(ps []Peripheral, field func(Peripheral) string) []string {
	if len(ps) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ps))
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ClonePeripherals deep copies a peripheral slice.
func ClonePeripherals(ps []Peripheral) []Peripheral {
	if len(ps) == 0 {
		return nil
	}
	dup := make([]Peripheral, len(ps))
	for i, p := range ps {
		dup[i] = p.Clone()
	}
	return dup
}
