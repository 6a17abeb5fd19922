package state

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Selection is an optional string filter. The zero value is unset.
type Selection struct {
	Value string
	Set   bool
}

// Some returns a set selection. A blank value is treated as unset.
func Some(value string) Selection {
	value = strings.TrimSpace(value)
	if value == "" {
		return Selection{}
	}
	return Selection{Value: value, Set: true}
}

// None is the unset selection.
var None = Selection{}

// Matches reports whether v passes the selection, ignoring case.
func (s Selection) Matches(v string) bool {
	return !s.Set || strings.EqualFold(s.Value, v)
}

func (s Selection) String() string {
	if !s.Set {
		return "All"
	}
	return s.Value
}

// PriceRange is an inclusive price interval. The zero-width range at 0 means
// "unset" and matches everything.
type PriceRange struct {
	Lo decimal.Decimal
	Hi decimal.Decimal
}

// NewPriceRange builds a range from two decimals.
func NewPriceRange(lo, hi decimal.Decimal) PriceRange {
	return PriceRange{Lo: lo, Hi: hi}
}

// IsUnset reports whether r is the (0,0) sentinel.
func (r PriceRange) IsUnset() bool {
	return r.Lo.IsZero() && r.Hi.IsZero()
}

// Contains reports lo <= price <= hi at cent precision.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	p := price.Round(2)
	return p.GreaterThanOrEqual(r.Lo.Round(2)) && p.LessThanOrEqual(r.Hi.Round(2))
}

// Equal compares both endpoints by value.
func (r PriceRange) Equal(o PriceRange) bool {
	return r.Lo.Equal(o.Lo) && r.Hi.Equal(o.Hi)
}

func (r PriceRange) String() string {
	if r.IsUnset() {
		return "any"
	}
	return r.Lo.StringFixed(2) + " - " + r.Hi.StringFixed(2)
}

// Feature is one of the boolean feature toggles.
type Feature int

const (
	FeatureWireless Feature = iota
	FeatureRGB
	FeatureMechanical
)

// featureTags lists the feature names each toggle accepts.
var featureTags = map[Feature][]string{
	FeatureWireless:   {"Wireless", "Bluetooth"},
	FeatureRGB:        {"RGB"},
	FeatureMechanical: {"Mechanical", "Mecanico"},
}

func (f Feature) String() string {
	switch f {
	case FeatureWireless:
		return "Wireless"
	case FeatureRGB:
		return "RGB"
	case FeatureMechanical:
		return "Mechanical"
	default:
		return "Unknown"
	}
}

// Tags returns the feature names that satisfy f.
func (f Feature) Tags() []string {
	return featureTags[f]
}

// FilterCriteria is the active search and filter state.
type FilterCriteria struct {
	Search   string
	Category Selection
	Brand    Selection
	// Bounds is the full observed price range of the catalog.
	Bounds PriceRange
	// Range is the selected sub-range, always inside Bounds.
	Range PriceRange

	WirelessOnly   bool
	RGBOnly        bool
	MechanicalOnly bool
}

// Enabled reports whether toggle f is on.
func (c FilterCriteria) Enabled(f Feature) bool {
	switch f {
	case FeatureWireless:
		return c.WirelessOnly
	case FeatureRGB:
		return c.RGBOnly
	case FeatureMechanical:
		return c.MechanicalOnly
	}
	return false
}

// withToggled returns c with toggle f flipped.
func (c FilterCriteria) withToggled(f Feature) FilterCriteria {
	switch f {
	case FeatureWireless:
		c.WirelessOnly = !c.WirelessOnly
	case FeatureRGB:
		c.RGBOnly = !c.RGBOnly
	case FeatureMechanical:
		c.MechanicalOnly = !c.MechanicalOnly
	}
	return c
}

// IsDefault reports whether no filter narrows the list.
func (c FilterCriteria) IsDefault() bool {
	return strings.TrimSpace(c.Search) == "" &&
		!c.Category.Set && !c.Brand.Set &&
		!c.WirelessOnly && !c.RGBOnly && !c.MechanicalOnly &&
		(c.Range.IsUnset() || c.Range.Equal(c.Bounds))
}
