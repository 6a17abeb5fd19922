// Package mockapi serves a seeded peripheral catalog over HTTP for local use
// and tests. It is embedded in perch when no api_url is configured and is also
// available standalone as perch-api.
//
// Routes:
//
//	GET /peripherals      list, filtered by category, brand, search,
//	                      minPrice, maxPrice and repeatable feature
//	GET /peripherals/{id} one peripheral
//	GET /categories       category names
//	GET /healthz          liveness
//
// Anything else returns 404 with the body {}.
package mockapi
