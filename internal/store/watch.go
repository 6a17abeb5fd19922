package store

import (
	"context"
	"errors"

	"github.com/five82/perch/internal/catalog"
)

// PeripheralUpdate is emitted by WatchPeripheral. Found is false while the id
// is not stored.
type PeripheralUpdate struct {
	Peripheral catalog.Peripheral
	Found      bool
}

// WatchPeripherals emits all peripherals ordered by name, on subscribe and
// after every write to the peripherals table.
func (s *Store) WatchPeripherals(ctx context.Context) <-chan []catalog.Peripheral {
	return watch(ctx, s, topicPeripherals, "peripherals", s.Peripherals)
}

// WatchFavorites emits favorited peripherals ordered by name.
func (s *Store) WatchFavorites(ctx context.Context) <-chan []catalog.Peripheral {
	return watch(ctx, s, topicPeripherals, "favorites", s.Favorites)
}

// WatchHistory emits history entries, most recent first.
func (s *Store) WatchHistory(ctx context.Context) <-chan []catalog.HistoryEntry {
	return watch(ctx, s, topicHistory, "history", s.History)
}

// WatchPeripheral emits the current state of one peripheral.
func (s *Store) WatchPeripheral(ctx context.Context, id string) <-chan PeripheralUpdate {
	return watch(ctx, s, topicPeripherals, "peripheral", func(ctx context.Context) (PeripheralUpdate, error) {
		p, err := s.Peripheral(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			return PeripheralUpdate{}, nil
		}
		if err != nil {
			return PeripheralUpdate{}, err
		}
		return PeripheralUpdate{Peripheral: p, Found: true}, nil
	})
}

// watch runs query once on subscribe and again after each notification on t.
// The returned channel holds at most one value; a newer result replaces an
// unread one. It is closed when ctx is done.
func watch[T any](ctx context.Context, s *Store, t topic, name string, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	changed, unsubscribe := s.hub.subscribe(t)

	go func() {
		defer close(out)
		defer unsubscribe()

		emit := func() {
			v, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Warn("watch query failed", "watch", name, "error", err)
				}
				return
			}
			select {
			case <-out:
			default:
			}
			out <- v
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
				emit()
			}
		}
	}()
	return out
}
