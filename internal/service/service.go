package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/source"
	"github.com/five82/perch/internal/store"
)

// Store is the persistence the service needs. *store.Store implements it.
type Store interface {
	UpsertPeripherals(ctx context.Context, records []store.Record) error
	Peripherals(ctx context.Context) ([]catalog.Peripheral, error)
	Peripheral(ctx context.Context, id string) (catalog.Peripheral, error)
	FavoriteIDs(ctx context.Context) (map[string]bool, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	UpsertHistory(ctx context.Context, peripheralID string, viewedAt time.Time) error
	DeleteHistory(ctx context.Context, peripheralID string) error
	ClearHistory(ctx context.Context) error

	WatchPeripherals(ctx context.Context) <-chan []catalog.Peripheral
	WatchFavorites(ctx context.Context) <-chan []catalog.Peripheral
	WatchPeripheral(ctx context.Context, id string) <-chan store.PeripheralUpdate
	WatchHistory(ctx context.Context) <-chan []catalog.HistoryEntry
}

// Source is the remote catalog. *source.Client implements it.
type Source interface {
	FetchPeripherals(ctx context.Context, q source.Query) ([]catalog.Peripheral, error)
	FetchPeripheral(ctx context.Context, id string) (catalog.Peripheral, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

var (
	_ Store  = (*store.Store)(nil)
	_ Source = (*source.Client)(nil)
)

// Options configures New.
type Options struct {
	Logger *slog.Logger
	// Now overrides the clock used for history and last-updated stamps.
	Now func() time.Time
}

// Service keeps the local store in sync with the remote catalog and performs
// the small domain mutations the UI needs.
type Service struct {
	store  Store
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// New builds a Service.
func New(st Store, src Source, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  st,
		source: src,
		logger: logger.With("component", "service"),
		now:    now,
	}
}

// Refresh fetches the catalog (optionally one category) and upserts it,
// keeping each stored favorite flag. On failure the store is left untouched.
// It returns the number of peripherals written.
func (s *Service) Refresh(ctx context.Context, category string) (int, error) {
	start := s.now()
	fetched, err := s.source.FetchPeripherals(ctx, source.Query{Category: category})
	if err != nil {
		s.logger.Warn("refresh failed", "category", category, "error", err)
		return 0, fmt.Errorf("fetch peripherals: %w", err)
	}

	favorites, err := s.store.FavoriteIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("load favorites: %w", err)
	}

	stamp := s.now()
	records := make([]store.Record, 0, len(fetched))
	for _, p := range fetched {
		p.IsFavorite = favorites[p.ID]
		records = append(records, store.Record{Peripheral: p, LastUpdated: stamp})
	}
	if err := s.store.UpsertPeripherals(ctx, records); err != nil {
		return 0, fmt.Errorf("store peripherals: %w", err)
	}

	s.logger.Info("refresh finished",
		"category", category,
		"count", len(records),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return len(records), nil
}

// Categories returns the remote category list, or the distinct categories of
// the stored catalog when the source fails. remote reports which one it is.
func (s *Service) Categories(ctx context.Context) (categories []string, remote bool, err error) {
	categories, err = s.source.FetchCategories(ctx)
	if err == nil {
		return categories, true, nil
	}
	s.logger.Warn("fetch categories failed, using local catalog", "error", err)

	ps, err := s.store.Peripherals(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load local categories: %w", err)
	}
	return catalog.Categories(ps), false, nil
}

// ToggleFavorite flips the favorite flag of id and returns the new value.
// Unknown ids are ignored.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	p, err := s.store.Peripheral(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load peripheral: %w", err)
	}
	next := !p.IsFavorite
	if err := s.store.SetFavorite(ctx, id, next); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("set favorite: %w", err)
	}
	return next, nil
}

// RecordView stamps id as viewed now, replacing any earlier entry.
func (s *Service) RecordView(ctx context.Context, id string) error {
	if err := s.store.UpsertHistory(ctx, id, s.now()); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// DeleteHistory removes the history entry for id.
func (s *Service) DeleteHistory(ctx context.Context, id string) error {
	return s.store.DeleteHistory(ctx, id)
}

// ClearHistory removes all history.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.store.ClearHistory(ctx)
}

// PeripheralOnce returns the stored peripheral, or fetches and stores it
// (not favorited) when it is not local. found is false when neither has it.
func (s *Service) PeripheralOnce(ctx context.Context, id string) (p catalog.Peripheral, found bool, err error) {
	local, err := s.store.Peripheral(ctx, id)
	switch {
	case err == nil:
		return local, true, nil
	case !errors.Is(err, catalog.ErrNotFound):
		s.logger.Warn("local lookup failed", "id", id, "error", err)
	}

	remote, err := s.source.FetchPeripheral(ctx, id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			s.logger.Warn("remote lookup failed", "id", id, "error", err)
		}
		return catalog.Peripheral{}, false, nil
	}
	remote.IsFavorite = false
	if err := s.store.UpsertPeripherals(ctx, []store.Record{{Peripheral: remote, LastUpdated: s.now()}}); err != nil {
		s.logger.Warn("store fetched peripheral", "id", id, "error", err)
	}
	return remote, true, nil
}

// PeripheralsByIDs returns the stored peripherals for ids in the given order,
// skipping unknown ids.
func (s *Service) PeripheralsByIDs(ctx context.Context, ids []string) ([]catalog.Peripheral, error) {
	out := make([]catalog.Peripheral, 0, len(ids))
	for _, id := range ids {
		p, err := s.store.Peripheral(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load peripheral %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// WatchPeripherals streams the full catalog ordered by name.
func (s *Service) WatchPeripherals(ctx context.Context) <-chan []catalog.Peripheral {
	return s.store.WatchPeripherals(ctx)
}

// WatchFavorites streams favorited peripherals ordered by name.
func (s *Service) WatchFavorites(ctx context.Context) <-chan []catalog.Peripheral {
	return s.store.WatchFavorites(ctx)
}

// WatchPeripheral streams one peripheral.
func (s *Service) WatchPeripheral(ctx context.Context, id string) <-chan store.PeripheralUpdate {
	return s.store.WatchPeripheral(ctx, id)
}
