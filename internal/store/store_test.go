package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.Config{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return New(db, nil)
}

func samplePeripheral(id, name, price string) catalog.Peripheral {
	return catalog.Peripheral{
		ID:          id,
		Name:        name,
		Brand:       "Logi",
		Category:    "Mouse",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://img.example/" + id + ".png",
		Description: "A " + name,
		Specs:       map[string]string{"DPI": "16000", "Weight": "63g"},
		Features:    []string{"Wireless", "RGB"},
	}
}

func TestUpsertAndGetRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	want := samplePeripheral("a", "Zed", "49.99")
	want.IsFavorite = true

	if err := st.UpsertPeripherals(ctx, []Record{{Peripheral: want, LastUpdated: time.UnixMilli(1000)}}); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	got, err := st.Peripheral(ctx, "a")
	if err != nil {
		t.Fatalf("Peripheral() error = %v", err)
	}
	if !got.Price.Equal(want.Price) {
		t.Fatalf("Price = %s, want %s", got.Price, want.Price)
	}
	got.Price, want.Price = decimal.Zero, decimal.Zero
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Peripheral() = %+v, want %+v", got, want)
	}
}

func TestPeripheralUnknownID(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Peripheral(context.Background(), "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("Peripheral(missing) error = %v, want ErrNotFound", err)
	}
}

func TestPeripheralsOrderedByName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	records := []Record{
		{Peripheral: samplePeripheral("a", "Zed", "50")},
		{Peripheral: samplePeripheral("b", "Abe", "150")},
		{Peripheral: samplePeripheral("c", "Mia", "75")},
	}
	if err := st.UpsertPeripherals(ctx, records); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	ps, err := st.Peripherals(ctx)
	if err != nil {
		t.Fatalf("Peripherals() error = %v", err)
	}
	var names []string
	for _, p := range ps {
		names = append(names, p.Name)
	}
	if want := []string{"Abe", "Mia", "Zed"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestUpsertReplacesByID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if err := st.UpsertPeripherals(ctx, []Record{{Peripheral: samplePeripheral("a", "Old", "10")}}); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	if err := st.UpsertPeripherals(ctx, []Record{{Peripheral: samplePeripheral("a", "New", "20")}}); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	ps, err := st.Peripherals(ctx)
	if err != nil {
		t.Fatalf("Peripherals() error = %v", err)
	}
	if len(ps) != 1 || ps[0].Name != "New" {
		t.Fatalf("Peripherals() = %+v, want one row named New", ps)
	}
}

func TestFavorites(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if err := st.UpsertPeripherals(ctx, []Record{
		{Peripheral: samplePeripheral("a", "Zed", "50")},
		{Peripheral: samplePeripheral("b", "Abe", "150")},
	}); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	if err := st.SetFavorite(ctx, "a", true); err != nil {
		t.Fatalf("SetFavorite() error = %v", err)
	}
	if err := st.SetFavorite(ctx, "x", true); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("SetFavorite(x) error = %v, want ErrNotFound", err)
	}

	favs, err := st.Favorites(ctx)
	if err != nil {
		t.Fatalf("Favorites() error = %v", err)
	}
	if len(favs) != 1 || favs[0].ID != "a" || !favs[0].IsFavorite {
		t.Fatalf("Favorites() = %+v, want [a]", favs)
	}
	ids, err := st.FavoriteIDs(ctx)
	if err != nil {
		t.Fatalf("FavoriteIDs() error = %v", err)
	}
	if want := map[string]bool{"a": true}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("FavoriteIDs() = %v, want %v", ids, want)
	}
}

func TestHistoryKeepsOneEntryPerPeripheral(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	first := time.UnixMilli(1_000)
	later := time.UnixMilli(5_000)

	if err := st.UpsertHistory(ctx, "a", first); err != nil {
		t.Fatalf("UpsertHistory() error = %v", err)
	}
	if err := st.UpsertHistory(ctx, "b", time.UnixMilli(2_000)); err != nil {
		t.Fatalf("UpsertHistory() error = %v", err)
	}
	if err := st.UpsertHistory(ctx, "a", later); err != nil {
		t.Fatalf("UpsertHistory() error = %v", err)
	}

	entries, err := st.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(History()) = %d, want 2", len(entries))
	}
	if entries[0].PeripheralID != "a" || entries[0].ViewedAt != later.UnixMilli() {
		t.Fatalf("History()[0] = %+v, want a at %d", entries[0], later.UnixMilli())
	}

	if err := st.DeleteHistory(ctx, "a"); err != nil {
		t.Fatalf("DeleteHistory() error = %v", err)
	}
	entries, _ = st.History(ctx)
	if len(entries) != 1 || entries[0].PeripheralID != "b" {
		t.Fatalf("History() after delete = %+v, want [b]", entries)
	}

	if err := st.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	entries, _ = st.History(ctx)
	if len(entries) != 0 {
		t.Fatalf("History() after clear = %+v, want empty", entries)
	}
}

func TestMalformedColumnsDecodeEmpty(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if _, err := st.db.ExecContext(ctx, `INSERT INTO peripherals (id, name, price, specs, features)
		VALUES ('bad', 'Broken', 'oops', '{not json', '["unterminated')`); err != nil {
		t.Fatalf("insert malformed row: %v", err)
	}

	p, err := st.Peripheral(ctx, "bad")
	if err != nil {
		t.Fatalf("Peripheral() error = %v", err)
	}
	if len(p.Specs) != 0 || len(p.Features) != 0 {
		t.Fatalf("Specs = %v, Features = %v, want empty", p.Specs, p.Features)
	}
	if !p.Price.IsZero() {
		t.Fatalf("Price = %s, want 0", p.Price)
	}
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch emission")
	}
	var zero T
	return zero
}

func TestWatchPeripheralsEmitsOnSubscribeAndWrite(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := st.WatchPeripherals(ctx)
	if got := recv(t, ch); len(got) != 0 {
		t.Fatalf("initial emission = %v, want empty", got)
	}

	if err := st.UpsertPeripherals(ctx, []Record{{Peripheral: samplePeripheral("a", "Zed", "50")}}); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	if got := recv(t, ch); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("emission after write = %+v, want [a]", got)
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func TestWatchPeripheralTracksFound(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := st.WatchPeripheral(ctx, "a")
	if got := recv(t, ch); got.Found {
		t.Fatalf("initial emission Found = true, want false")
	}
	if err := st.UpsertPeripherals(ctx, []Record{{Peripheral: samplePeripheral("a", "Zed", "50")}}); err != nil {
		t.Fatalf("UpsertPeripherals() error = %v", err)
	}
	if got := recv(t, ch); !got.Found || got.Peripheral.Name != "Zed" {
		t.Fatalf("emission after write = %+v, want Zed", got)
	}
}

func TestWatchHistory(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := st.WatchHistory(ctx)
	recv(t, ch)
	if err := st.UpsertHistory(ctx, "a", time.UnixMilli(10)); err != nil {
		t.Fatalf("UpsertHistory() error = %v", err)
	}
	if got := recv(t, ch); len(got) != 1 || got[0].PeripheralID != "a" {
		t.Fatalf("emission = %+v, want [a]", got)
	}
}
