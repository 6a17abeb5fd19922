// Package source is the HTTP client for the remote peripheral catalog.
//
// The API has three read-only routes:
//
//	GET /peripherals?category=&brand=&search=&minPrice=&maxPrice=&feature=...
//	GET /peripherals/{id}
//	GET /categories
//
// Every call is bounded by the client timeout and tagged with an
// X-Request-Id header. Failures map onto the catalog sentinels: a 404 is
// catalog.ErrNotFound, a transport error or 5xx wraps catalog.ErrUnavailable.
// Callers treat either as "keep using local data".
package source
