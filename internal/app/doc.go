// Package app wires perch together.
//
// # Overview
//
// Run is the composition root. It loads configuration and preferences, opens
// the log file and the SQLite catalog, starts the embedded mock catalog API
// when no api_url is configured, and hands the assembled state store and
// controller to the UI.
//
// # Components
//
//   - app.go: Run and mock API startup
//   - pump.go: store streams to state events
//   - controller.go: catalog operations triggered by the UI
//
// # Data Flow
//
//	┌───────────────┐  watch   ┌─────────┐ events  ┌─────────────┐
//	│ store (SQLite)│────────→ │  pump   │───────→ │ state.Store │
//	└───────────────┘ 3 chans  └─────────┘ 1 chan  └──────┬──────┘
//	        ↑                                             │ Subscribe
//	        │ upsert / favorite / history                 ↓
//	┌───────┴───────┐  calls   ┌────────────┐  keys  ┌────────┐
//	│   service     │←──────── │ controller │←────── │   ui   │
//	└───────────────┘          └────────────┘        └────────┘
//
// Writes never touch the state directly. The controller calls the service,
// the service writes the store, the store wakes its watchers and the pump
// dispatches the fresh rows. The controller itself only dispatches sync
// lifecycle events (RefreshStarted, RefreshFinished) and failures.
//
// # Pump Ordering
//
// Each store stream is forwarded by its own goroutine into one unbuffered
// events channel, and a single goroutine dispatches from it. Events from one
// stream keep their order; no order is implied across streams. Stream
// channels close when the context ends, after which the pump drains and
// closes the channel returned by StartPump.
//
// # Refresh
//
// The initial refresh and category load are fired in the background before
// the UI starts. Later refreshes come from the UI. Refresh is never retried
// automatically, and a failure only sets the error message in the state; the
// next attempt starts clean. Concurrent refresh requests while one is running
// are dropped.
package app
