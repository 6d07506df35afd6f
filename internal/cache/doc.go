// Package cache implements a small in-memory TTL cache for API responses.
//
// Entries are grouped by a prefix naming the endpoint family ("kpis",
// "alerts_summary", ...) and keyed by a hash of the request parameters.
// Each prefix carries its own TTL, tuned to how fast the underlying data
// moves; expiry is checked lazily on read. Invalidate drops a whole
// prefix at once, which is how mutations keep reads coherent.
//
// The clock is injected so tests can advance time deterministically.
package cache
