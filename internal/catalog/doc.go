// Package catalog defines the peripheral catalog domain types shared by the
// store, the remote source, the service layer and the UI.
//
// A Peripheral is an immutable value: every layer that hands one out returns a
// Clone so callers can never mutate another component's copy of specs or
// features. Prices use shopspring/decimal to avoid float rounding when prices
// are persisted as text and compared against a price range.
//
// Two sentinel errors cross package boundaries:
//
//   - ErrNotFound: an id is unknown to the store or the remote API
//   - ErrUnavailable: the remote catalog could not be reached or failed
//
// Callers match them with errors.Is.
package catalog
