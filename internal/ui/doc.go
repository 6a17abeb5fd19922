// Package ui provides the terminal user interface for perch.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds a copy of the latest
// state.Snapshot plus purely visual state (views, cursors, focus, modals).
// It never mutates catalog data directly: filter and comparison changes are
// dispatched to the state.Store, and anything that touches storage or the
// network goes through the Controller in a tea.Cmd.
//
// # Package Structure
//
//   - app.go: Model, Update, View, messages, commands and Run
//   - input.go: key routing, global keys, list navigation
//   - keys.go: key bindings
//   - header.go: status bar and per-view command hints
//   - catalog.go: catalog list, shared list/detail layout, detail pane
//   - search.go: filter form above the result list
//   - favorites.go, history.go: favorites and browsing history lists
//   - comparison.go: side-by-side comparison table
//   - logs.go: tail of the local log file
//   - modal.go: price entry and confirmation dialogs
//   - help.go: full key help overlay
//   - theme.go, render.go: colors, styles and rendering helpers
//
// # Views
//
//   - Catalog (1): filtered catalog with details
//   - Search (2): search box, category, brand, price and feature filters
//   - Favorites (3): peripherals marked with f
//   - Comparison (4): up to three peripherals marked with c
//   - History (5): recently opened peripherals, newest first
//   - Logs (L): the application log file
//
// # Update Flow
//
//  1. Init fetches the current snapshot and waits on the store subscription.
//  2. Each store change produces an updatedMsg; the wait is re-armed.
//  3. Keys either dispatch a state event synchronously or return a command
//     that calls the Controller.
//  4. Controller failures are reported to the store and show up in the
//     header as the error message. Esc dismisses it.
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:    ctx,
//		Store:      st,
//		Controller: ctrl,
//		Prefs:      p,
//		PrefsPath:  prefsPath,
//		LogPath:    cfg.LogPath(),
//	})
package ui
