// Package service orchestrates the catalog store and the remote source.
//
// Refresh is the only path that writes remote data wholesale. It never
// retries: a failure is returned to the caller and the store keeps its last
// good copy. Lookups and categories degrade to local data when the source is
// unreachable, and unknown ids resolve to "no result" rather than an error.
//
// The Watch methods expose the store streams the UI state is built from.
// WatchHistory joins history entries with the current catalog.
package service
