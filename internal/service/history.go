package service

import (
	"context"

	"github.com/five82/perch/internal/catalog"
)

// WatchHistory streams history entries joined with the catalog, most recent
// first. Entries whose peripheral is no longer stored are dropped. Nothing is
// emitted until both underlying streams have produced a value.
func (s *Service) WatchHistory(ctx context.Context) <-chan []catalog.HistoryItem {
	out := make(chan []catalog.HistoryItem, 1)
	entriesCh := s.store.WatchHistory(ctx)
	peripheralsCh := s.store.WatchPeripherals(ctx)

	go func() {
		defer close(out)
		var (
			entries     []catalog.HistoryEntry
			peripherals []catalog.Peripheral
			haveEntries bool
			havePeriphs bool
		)
		for entriesCh != nil || peripheralsCh != nil {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-entriesCh:
				if !ok {
					entriesCh = nil
					continue
				}
				entries, haveEntries = v, true
			case v, ok := <-peripheralsCh:
				if !ok {
					peripheralsCh = nil
					continue
				}
				peripherals, havePeriphs = v, true
			}
			if !haveEntries || !havePeriphs {
				continue
			}
			items := JoinHistory(entries, peripherals)
			select {
			case <-out:
			default:
			}
			out <- items
		}
	}()
	return out
}

// JoinHistory pairs each entry with its peripheral, keeping entry order.
func JoinHistory(entries []catalog.HistoryEntry, peripherals []catalog.Peripheral) []catalog.HistoryItem {
	byID := make(map[string]catalog.Peripheral, len(peripherals))
	for _, p := range peripherals {
		byID[p.ID] = p
	}
	items := make([]catalog.HistoryItem, 0, len(entries))
	for _, e := range entries {
		p, ok := byID[e.PeripheralID]
		if !ok {
			continue
		}
		items = append(items, catalog.HistoryItem{Peripheral: p, ViewedAt: e.ViewedTime()})
	}
	return items
}
