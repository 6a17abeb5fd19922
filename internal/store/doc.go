// Package store persists the peripheral catalog and the browsing history in
// SQLite and exposes them as point queries and as watch channels.
//
// # Tables
//
// peripherals is keyed by id and mirrors the remote catalog. Each refresh
// replaces rows wholesale (INSERT OR REPLACE); the caller is responsible for
// carrying the favorite flag over from the previous row. specs and features
// are stored as JSON text, price as a decimal string.
//
// history holds at most one row per peripheral id. A repeated view updates
// viewed_at instead of inserting a second row.
//
// # Watches
//
// WatchPeripherals, WatchFavorites, WatchPeripheral and WatchHistory each
// start a goroutine that queries once immediately and then again after every
// committed write to the underlying table:
//
//	ctx, cancel := context.WithCancel(ctx)
//	defer cancel()
//	for ps := range st.WatchPeripherals(ctx) {
//		render(ps)
//	}
//
// The channel is buffered with a capacity of one and only ever holds the
// latest result, so a slow reader skips intermediate states instead of
// blocking writers. Cancelling ctx closes the channel.
package store
