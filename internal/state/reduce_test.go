package state

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
)

func reduceAll(s Snapshot, evs ...Event) Snapshot {
	for _, ev := range evs {
		s = Reduce(s, ev)
	}
	return s
}

func TestReduceScenarioSortAndBounds(t *testing.T) {
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: []catalog.Peripheral{
		item("a", "Zed", "Acme", "Mouse", 50),
		item("b", "Abe", "Acme", "Mouse", 150),
	}})
	if got, want := ids(s.Filtered), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Filtered = %v, want %v", got, want)
	}
	want := NewPriceRange(decimal.NewFromInt(50), decimal.NewFromInt(150))
	if !s.Criteria.Bounds.Equal(want) {
		t.Fatalf("Bounds = %v, want %v", s.Criteria.Bounds, want)
	}
	if !s.Criteria.Range.Equal(want) {
		t.Fatalf("Range = %v, want %v", s.Criteria.Range, want)
	}
	if s.Loading {
		t.Fatal("Loading = true after first catalog")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(Initial(), PeripheralsChanged{Peripherals: fixture()})
	before = Reduce(before, ComparisonToggled{ID: "m1"})
	_ = Reduce(before, ComparisonToggled{ID: "k1"})
	_ = Reduce(before, ComparisonToggled{ID: "m1"})
	if got := before.Comparison; !reflect.DeepEqual(got, []string{"m1"}) {
		t.Fatalf("Comparison = %v, want [m1]", got)
	}
}

func TestReduceCatalogChangeClampsRange(t *testing.T) {
	d := decimal.NewFromInt
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: fixture()})
	s = Reduce(s, PriceRangeChanged{Lo: d(100), Hi: d(140)})
	if got := ids(s.Filtered); !reflect.DeepEqual(got, []string{"h1"}) {
		t.Fatalf("Filtered = %v, want [h1]", got)
	}

	s = Reduce(s, PeripheralsChanged{Peripherals: fixture()[2:]})
	want := NewPriceRange(d(100), d(120))
	if !s.Criteria.Range.Equal(want) {
		t.Fatalf("Range = %v, want %v", s.Criteria.Range, want)
	}
	if got := ids(s.Filtered); !reflect.DeepEqual(got, []string{"h1"}) {
		t.Fatalf("Filtered = %v, want [h1]", got)
	}
}

func TestReducePriceRangeChangedNormalizes(t *testing.T) {
	d := decimal.NewFromInt
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: fixture()})
	s = Reduce(s, PriceRangeChanged{Lo: d(90), Hi: d(1000)})
	want := NewPriceRange(d(90), d(150))
	if !s.Criteria.Range.Equal(want) {
		t.Fatalf("Range = %v, want %v", s.Criteria.Range, want)
	}
}

func TestReducePriceRangeZeroIsUnset(t *testing.T) {
	ps := append(fixture(), item("f1", "Freebie", "Acme", "Mouse", 0))
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: ps})
	s = Reduce(s, PriceRangeChanged{Lo: decimal.Zero, Hi: decimal.Zero})
	if !s.Criteria.Range.IsUnset() {
		t.Fatalf("Range = %v, want unset", s.Criteria.Range)
	}
	if len(s.Filtered) != len(ps) {
		t.Fatalf("Filtered = %v, want all %d items", ids(s.Filtered), len(ps))
	}
}

func TestReduceFiltersClearedWidensRange(t *testing.T) {
	d := decimal.NewFromInt
	s := reduceAll(Initial(),
		PeripheralsChanged{Peripherals: fixture()},
		SearchChanged{Term: "k"},
		CategorySelected{Category: Some("Keyboard")},
		BrandSelected{Brand: Some("Corsair")},
		FeatureToggled{Feature: FeatureRGB},
		PriceRangeChanged{Lo: d(100), Hi: d(120)},
		FiltersCleared{},
	)
	c := s.Criteria
	if c.Search != "" || c.Category.Set || c.Brand.Set || c.RGBOnly {
		t.Fatalf("criteria not cleared: %+v", c)
	}
	if !c.Range.Equal(c.Bounds) || c.Range.IsUnset() {
		t.Fatalf("Range = %v, want bounds %v", c.Range, c.Bounds)
	}
	if len(s.Filtered) != len(fixture()) {
		t.Fatalf("len(Filtered) = %d, want %d", len(s.Filtered), len(fixture()))
	}
	if !c.IsDefault() {
		t.Fatal("IsDefault() = false after clear")
	}
}

func TestReduceComparisonCapacity(t *testing.T) {
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: fixture()})
	for _, id := range []string{"m1", "k1", "k2", "h1", "m2"} {
		s = Reduce(s, ComparisonToggled{ID: id})
		if len(s.Comparison) > MaxCompared {
			t.Fatalf("len(Comparison) = %d, want <= %d", len(s.Comparison), MaxCompared)
		}
	}
	if want := []string{"m1", "k1", "k2"}; !reflect.DeepEqual(s.Comparison, want) {
		t.Fatalf("Comparison = %v, want %v", s.Comparison, want)
	}

	s = Reduce(s, ComparisonToggled{ID: "k1"})
	if want := []string{"m1", "k2"}; !reflect.DeepEqual(s.Comparison, want) {
		t.Fatalf("Comparison after toggle off = %v, want %v", s.Comparison, want)
	}
	s = Reduce(s, ComparisonRemoved{ID: "m1"})
	if want := []string{"k2"}; !reflect.DeepEqual(s.Comparison, want) {
		t.Fatalf("Comparison after remove = %v, want %v", s.Comparison, want)
	}
	s = Reduce(s, ComparisonCleared{})
	if len(s.Comparison) != 0 {
		t.Fatalf("Comparison after clear = %v, want empty", s.Comparison)
	}
}

func TestReduceFavoritesNeverPruneComparison(t *testing.T) {
	s := reduceAll(Initial(),
		PeripheralsChanged{Peripherals: fixture()},
		ComparisonToggled{ID: "m1"},
		ComparisonToggled{ID: "k1"},
		FavoritesChanged{Favorites: []catalog.Peripheral{item("k1", "K70", "Corsair", "Keyboard", 150)}},
		FavoritesChanged{Favorites: nil},
	)
	if want := []string{"m1", "k1"}; !reflect.DeepEqual(s.Comparison, want) {
		t.Fatalf("Comparison = %v, want %v", s.Comparison, want)
	}
}

func TestReduceCatalogPrunesComparison(t *testing.T) {
	s := reduceAll(Initial(),
		PeripheralsChanged{Peripherals: fixture()},
		ComparisonToggled{ID: "m1"},
		ComparisonToggled{ID: "k1"},
		PeripheralsChanged{Peripherals: fixture()[1:]},
	)
	if want := []string{"k1"}; !reflect.DeepEqual(s.Comparison, want) {
		t.Fatalf("Comparison = %v, want %v", s.Comparison, want)
	}
}

func TestReduceCategories(t *testing.T) {
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: fixture()})
	if want := []string{"Headset", "Keyboard", "Mouse"}; !reflect.DeepEqual(s.Categories, want) {
		t.Fatalf("derived Categories = %v, want %v", s.Categories, want)
	}

	remote := []string{"Mouse", "Keyboard", "Webcam"}
	s = Reduce(s, CategoriesLoaded{Categories: remote, Remote: true})
	s = Reduce(s, PeripheralsChanged{Peripherals: fixture()[:1]})
	if want := []string{"Keyboard", "Mouse", "Webcam"}; !reflect.DeepEqual(s.Categories, want) {
		t.Fatalf("Categories = %v, want sorted remote %v", s.Categories, want)
	}
	if remote[0] != "Mouse" {
		t.Fatalf("CategoriesLoaded sorted the caller's slice: %v", remote)
	}
	if want := []string{"Razer"}; !reflect.DeepEqual(s.Brands, want) {
		t.Fatalf("Brands = %v, want %v", s.Brands, want)
	}
}

func TestReduceEmptyRemoteCategoriesKeepDeriving(t *testing.T) {
	s := Reduce(Initial(), PeripheralsChanged{Peripherals: fixture()[:2]})
	derived := slices.Clone(s.Categories)
	if len(derived) == 0 {
		t.Fatal("no categories derived from fixture")
	}

	s = Reduce(s, CategoriesLoaded{Categories: []string{}, Remote: true})
	if !reflect.DeepEqual(s.Categories, derived) {
		t.Fatalf("Categories after empty remote = %v, want %v", s.Categories, derived)
	}

	s = Reduce(s, PeripheralsChanged{Peripherals: fixture()})
	if want := []string{"Headset", "Keyboard", "Mouse"}; !reflect.DeepEqual(s.Categories, want) {
		t.Fatalf("Categories after refresh = %v, want re-derived %v", s.Categories, want)
	}
}

func TestReduceRefreshLifecycle(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "success", err: nil, wantMsg: ""},
		{name: "unavailable", err: fmt.Errorf("fetch peripherals: %w", catalog.ErrUnavailable), wantMsg: msgUnavailable},
		{name: "other", err: errors.New("decode: bad json"), wantMsg: "decode: bad json"},
		{name: "empty text", err: errors.New(""), wantMsg: msgSyncFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(Initial(), ErrorReported{Err: errors.New("old")})
			s = Reduce(s, RefreshStarted{})
			if !s.Refreshing || s.ErrorMessage != "" {
				t.Fatalf("after start Refreshing = %v, ErrorMessage = %q", s.Refreshing, s.ErrorMessage)
			}
			s = Reduce(s, RefreshFinished{Err: tt.err, At: at})
			if s.Refreshing {
				t.Fatal("Refreshing = true after finish")
			}
			if s.ErrorMessage != tt.wantMsg {
				t.Fatalf("ErrorMessage = %q, want %q", s.ErrorMessage, tt.wantMsg)
			}
			if tt.err == nil && !s.LastUpdated.Equal(at) {
				t.Fatalf("LastUpdated = %v, want %v", s.LastUpdated, at)
			}
			if tt.err != nil && !s.LastUpdated.IsZero() {
				t.Fatalf("LastUpdated = %v, want zero", s.LastUpdated)
			}
		})
	}
}

func TestSpecUnion(t *testing.T) {
	ps := []catalog.Peripheral{
		{ID: "a", Specs: map[string]string{"DPI": "16000", "Weight": "80g"}},
		{ID: "b", Specs: map[string]string{"Switches": "Red", "DPI": "-"}},
	}
	got := SpecUnion(ps)
	if want := []string{"DPI", "Weight", "Switches"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SpecUnion() = %v, want %v", got, want)
	}
}
