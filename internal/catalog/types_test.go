package catalog

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeripheral_HasFeatureIgnoresCase(t *testing.T) {
	p := Peripheral{Features: []string{"RGB", "wireless"}}

	if !p.HasFeature("Wireless", "Bluetooth") {
		t.Fatalf("HasFeature(Wireless, Bluetooth) = false, want true")
	}
	if !p.HasFeature("rgb") {
		t.Fatalf("HasFeature(rgb) = false, want true")
	}
	if p.HasFeature("Mechanical") {
		t.Fatalf("HasFeature(Mechanical) = true, want false")
	}
	if (Peripheral{}).HasFeature("RGB") {
		t.Fatalf("HasFeature on empty features = true, want false")
	}
}

func TestPeripheral_CloneIsIndependent(t *testing.T) {
	orig := Peripheral{
		ID:       "a",
		Price:    decimal.RequireFromString("10.50"),
		Specs:    map[string]string{"DPI": "16000"},
		Features: []string{"RGB"},
	}
	dup := orig.Clone()
	dup.Specs["DPI"] = "800"
	dup.Features[0] = "Wireless"

	if orig.Specs["DPI"] != "16000" {
		t.Fatalf("orig.Specs[DPI] = %q, want 16000", orig.Specs["DPI"])
	}
	if orig.Features[0] != "RGB" {
		t.Fatalf("orig.Features[0] = %q, want RGB", orig.Features[0])
	}
}

func TestPeripheral_SpecKeysSorted(t *testing.T) {
	p := Peripheral{Specs: map[string]string{"Weight": "60g", "DPI": "16000", "Buttons": "6"}}
	got := p.SpecKeys()
	want := []string{"Buttons", "DPI", "Weight"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SpecKeys() = %v, want %v", got, want)
	}
}

func TestCategoriesAndBrands(t *testing.T) {
	ps := []Peripheral{
		{Category: "Mouse", Brand: "Logi"},
		{Category: "Keyboard", Brand: "Razer"},
		{Category: "Mouse", Brand: "Razer"},
	}
	if got, want := Categories(ps), []string{"Keyboard", "Mouse"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	if got, want := Brands(ps), []string{"Logi", "Razer"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Brands() = %v, want %v", got, want)
	}
	if got := Categories(nil); got != nil {
		t.Fatalf("Categories(nil) = %v, want nil", got)
	}
}

func TestHistoryEntry_ViewedTime(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	h := HistoryEntry{PeripheralID: "a", ViewedAt: at.UnixMilli()}
	if !h.ViewedTime().Equal(at) {
		t.Fatalf("ViewedTime() = %v, want %v", h.ViewedTime(), at)
	}
}
