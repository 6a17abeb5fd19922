package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/database"
	"github.com/five82/perch/internal/source"
	"github.com/five82/perch/internal/store"
)

type fakeSource struct {
	mu          sync.Mutex
	peripherals []catalog.Peripheral
	categories  []string
	err         error
	queries     []source.Query
}

func (f *fakeSource) FetchPeripherals(_ context.Context, q source.Query) ([]catalog.Peripheral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return catalog.ClonePeripherals(f.peripherals), nil
}

func (f *fakeSource) FetchPeripheral(_ context.Context, id string) (catalog.Peripheral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return catalog.Peripheral{}, f.err
	}
	for _, p := range f.peripherals {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return catalog.Peripheral{}, catalog.ErrNotFound
}

func (f *fakeSource) FetchCategories(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestService(t *testing.T, src *fakeSource) (*Service, *store.Store, *clock) {
	t.Helper()
	db, err := database.Open(database.Config{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	st := store.New(db, nil)
	clk := &clock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(st, src, Options{Now: clk.Now}), st, clk
}

func peripheral(id, name, category string, price int64) catalog.Peripheral {
	return catalog.Peripheral{
		ID:       id,
		Name:     name,
		Brand:    "Acme",
		Category: category,
		Price:    decimal.NewFromInt(price),
		Specs:    map[string]string{"DPI": "800"},
		Features: []string{"RGB"},
	}
}

func TestRefreshPreservesFavorites(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{
		peripheral("a", "Zed", "Mouse", 50),
		peripheral("b", "Abe", "Keyboard", 150),
	}}
	svc, st, _ := newTestService(t, src)
	ctx := context.Background()

	n, err := svc.Refresh(ctx, "")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("Refresh() count = %d, want 2", n)
	}
	if fav, err := svc.ToggleFavorite(ctx, "a"); err != nil || !fav {
		t.Fatalf("ToggleFavorite(a) = %v, %v; want true, nil", fav, err)
	}

	src.peripherals[0].Name = "Zed Mk2"
	if _, err := svc.Refresh(ctx, "Mouse"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := src.queries[len(src.queries)-1].Category; got != "Mouse" {
		t.Fatalf("query category = %q, want Mouse", got)
	}

	p, err := st.Peripheral(ctx, "a")
	if err != nil {
		t.Fatalf("Peripheral(a) error = %v", err)
	}
	if p.Name != "Zed Mk2" || !p.IsFavorite {
		t.Fatalf("after refresh a = %+v, want renamed and still favorite", p)
	}
	b, _ := st.Peripheral(ctx, "b")
	if b.IsFavorite {
		t.Fatal("b became favorite without a toggle")
	}
}

func TestRefreshFailureLeavesStoreUntouched(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{peripheral("a", "Zed", "Mouse", 50)}}
	svc, st, _ := newTestService(t, src)
	ctx := context.Background()
	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	src.fail(fmt.Errorf("%w: connection refused", catalog.ErrUnavailable))
	if _, err := svc.Refresh(ctx, ""); !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("Refresh() error = %v, want ErrUnavailable", err)
	}
	ps, err := st.Peripherals(ctx)
	if err != nil {
		t.Fatalf("Peripherals() error = %v", err)
	}
	if len(ps) != 1 || ps[0].ID != "a" {
		t.Fatalf("Peripherals() = %+v, want the pre-failure catalog", ps)
	}

	src.fail(nil)
	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() after recovery error = %v", err)
	}
}

func TestCategoriesFallBackToStore(t *testing.T) {
	src := &fakeSource{
		peripherals: []catalog.Peripheral{
			peripheral("a", "Zed", "Mouse", 50),
			peripheral("b", "Abe", "Keyboard", 150),
			peripheral("c", "Mia", "Mouse", 70),
		},
		categories: []string{"Mouse", "Keyboard", "Webcam"},
	}
	svc, _, _ := newTestService(t, src)
	ctx := context.Background()

	got, remote, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	if !remote {
		t.Fatal("Categories() remote = false, want true")
	}
	if want := []string{"Mouse", "Keyboard", "Webcam"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}

	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	src.fail(catalog.ErrUnavailable)
	got, remote, err = svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories() fallback error = %v", err)
	}
	if remote {
		t.Fatal("Categories() fallback remote = true, want false")
	}
	if want := []string{"Keyboard", "Mouse"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() fallback = %v, want %v", got, want)
	}
}

func TestToggleFavoriteUnknownIDIsNoop(t *testing.T) {
	svc, st, _ := newTestService(t, &fakeSource{})
	ctx := context.Background()

	fav, err := svc.ToggleFavorite(ctx, "x")
	if err != nil || fav {
		t.Fatalf("ToggleFavorite(x) = %v, %v; want false, nil", fav, err)
	}
	ps, _ := st.Peripherals(ctx)
	if len(ps) != 0 {
		t.Fatalf("store has %d rows after no-op toggle, want 0", len(ps))
	}
}

func TestToggleFavoriteTwiceRestores(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{peripheral("a", "Zed", "Mouse", 50)}}
	svc, _, _ := newTestService(t, src)
	ctx := context.Background()
	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	first, _ := svc.ToggleFavorite(ctx, "a")
	second, _ := svc.ToggleFavorite(ctx, "a")
	if !first || second {
		t.Fatalf("toggles = %v, %v; want true, false", first, second)
	}
}

func TestRecordViewTwiceKeepsLatest(t *testing.T) {
	svc, st, clk := newTestService(t, &fakeSource{})
	ctx := context.Background()

	if err := svc.RecordView(ctx, "a"); err != nil {
		t.Fatalf("RecordView() error = %v", err)
	}
	clk.Advance(time.Minute)
	if err := svc.RecordView(ctx, "a"); err != nil {
		t.Fatalf("RecordView() error = %v", err)
	}

	entries, err := st.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(History()) = %d, want 1", len(entries))
	}
	if want := clk.Now().UnixMilli(); entries[0].ViewedAt != want {
		t.Fatalf("ViewedAt = %d, want %d", entries[0].ViewedAt, want)
	}
}

func TestPeripheralOnce(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{peripheral("remote", "Far", "Mouse", 10)}}
	svc, st, _ := newTestService(t, src)
	ctx := context.Background()

	p, found, err := svc.PeripheralOnce(ctx, "remote")
	if err != nil || !found || p.ID != "remote" {
		t.Fatalf("PeripheralOnce(remote) = %+v, %v, %v; want remote found", p, found, err)
	}
	stored, err := st.Peripheral(ctx, "remote")
	if err != nil {
		t.Fatalf("fetched peripheral not persisted: %v", err)
	}
	if stored.IsFavorite {
		t.Fatal("fetched peripheral persisted as favorite")
	}

	src.fail(catalog.ErrUnavailable)
	if _, found, err := svc.PeripheralOnce(ctx, "remote"); err != nil || !found {
		t.Fatalf("PeripheralOnce(remote) offline = %v, %v; want local hit", found, err)
	}
	if _, found, err := svc.PeripheralOnce(ctx, "ghost"); err != nil || found {
		t.Fatalf("PeripheralOnce(ghost) = %v, %v; want not found, nil", found, err)
	}
}

func TestPeripheralsByIDsKeepsOrder(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{
		peripheral("a", "Zed", "Mouse", 50),
		peripheral("b", "Abe", "Keyboard", 150),
	}}
	svc, _, _ := newTestService(t, src)
	ctx := context.Background()
	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	ps, err := svc.PeripheralsByIDs(ctx, []string{"b", "missing", "a"})
	if err != nil {
		t.Fatalf("PeripheralsByIDs() error = %v", err)
	}
	if len(ps) != 2 || ps[0].ID != "b" || ps[1].ID != "a" {
		t.Fatalf("PeripheralsByIDs() = %+v, want [b a]", ps)
	}
}

func TestJoinHistoryDropsUnknown(t *testing.T) {
	entries := []catalog.HistoryEntry{
		{PeripheralID: "b", ViewedAt: 3000},
		{PeripheralID: "gone", ViewedAt: 2000},
		{PeripheralID: "a", ViewedAt: 1000},
	}
	ps := []catalog.Peripheral{{ID: "a", Name: "Zed"}, {ID: "b", Name: "Abe"}}

	items := JoinHistory(entries, ps)
	if len(items) != 2 {
		t.Fatalf("len(JoinHistory()) = %d, want 2", len(items))
	}
	if items[0].Peripheral.ID != "b" || items[1].Peripheral.ID != "a" {
		t.Fatalf("order = [%s %s], want [b a]", items[0].Peripheral.ID, items[1].Peripheral.ID)
	}
	if !items[0].ViewedAt.Equal(time.UnixMilli(3000)) {
		t.Fatalf("ViewedAt = %v, want %v", items[0].ViewedAt, time.UnixMilli(3000))
	}
}

func TestWatchHistoryJoinsStreams(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{peripheral("a", "Zed", "Mouse", 50)}}
	svc, _, _ := newTestService(t, src)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	ch := svc.WatchHistory(ctx)
	if err := svc.RecordView(ctx, "a"); err != nil {
		t.Fatalf("RecordView() error = %v", err)
	}
	if err := svc.RecordView(ctx, "ghost"); err != nil {
		t.Fatalf("RecordView() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case items := <-ch:
			if len(items) == 1 && items[0].Peripheral.ID == "a" {
				return
			}
		case <-deadline:
			t.Fatal("WatchHistory never emitted the joined entry for a")
		}
	}
}

func TestWatchPeripheralFollowsRefreshAndFavorite(t *testing.T) {
	src := &fakeSource{peripherals: []catalog.Peripheral{peripheral("a", "Zed", "Mouse", 50)}}
	svc, _, _ := newTestService(t, src)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := svc.WatchPeripheral(ctx, "a")
	waitPeripheral := func(what string, ok func(store.PeripheralUpdate) bool) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case u := <-ch:
				if ok(u) {
					return
				}
			case <-deadline:
				t.Fatalf("WatchPeripheral never emitted %s", what)
			}
		}
	}

	waitPeripheral("the missing state", func(u store.PeripheralUpdate) bool { return !u.Found })
	if _, err := svc.Refresh(ctx, ""); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	waitPeripheral("a after refresh", func(u store.PeripheralUpdate) bool {
		return u.Found && u.Peripheral.Name == "Zed" && !u.Peripheral.IsFavorite
	})
	if _, err := svc.ToggleFavorite(ctx, "a"); err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	waitPeripheral("a as favorite", func(u store.PeripheralUpdate) bool {
		return u.Found && u.Peripheral.IsFavorite
	})
}
