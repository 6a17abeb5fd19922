package app

import (
	"context"
	"sync"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/state"
)

// Streams are the reactive store reads the state engine follows.
// *service.Service implements it.
type Streams interface {
	WatchPeripherals(ctx context.Context) <-chan []catalog.Peripheral
	WatchFavorites(ctx context.Context) <-chan []catalog.Peripheral
	WatchHistory(ctx context.Context) <-chan []catalog.HistoryItem
}

// Dispatcher applies events to the UI state. *state.Store implements it.
type Dispatcher interface {
	Dispatch(ev state.Event) state.Snapshot
}

// StartPump subscribes to the three store streams and feeds their emissions,
// as state events, through one ordered channel into d. It returns a channel
// that is closed once every stream has ended and the last event is applied.
func StartPump(ctx context.Context, streams Streams, d Dispatcher) <-chan struct{} {
	events := make(chan state.Event)
	var wg sync.WaitGroup

	wg.Add(3)
	go forward(ctx, &wg, events, streams.WatchPeripherals(ctx), func(ps []catalog.Peripheral) state.Event {
		return state.PeripheralsChanged{Peripherals: ps}
	})
	go forward(ctx, &wg, events, streams.WatchFavorites(ctx), func(ps []catalog.Peripheral) state.Event {
		return state.FavoritesChanged{Favorites: ps}
	})
	go forward(ctx, &wg, events, streams.WatchHistory(ctx), func(items []catalog.HistoryItem) state.Event {
		return state.HistoryChanged{Items: items}
	})
	go func() {
		wg.Wait()
		close(events)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			d.Dispatch(ev)
		}
	}()
	return done
}

func forward[T any](ctx context.Context, wg *sync.WaitGroup, out chan<- state.Event, in <-chan T, wrap func(T) state.Event) {
	defer wg.Done()
	for v := range in {
		select {
		case out <- wrap(v):
		case <-ctx.Done():
			return
		}
	}
}
