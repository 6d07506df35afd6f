// Package api is the typed HTTP client for the dashboard backend.
//
// Every call takes a context and returns a decoded response struct or an
// error; non-2xx responses surface as *StatusError. Read endpoints whose
// data moves slowly are cached through internal/cache with per-endpoint
// TTLs, so repeated dashboard refreshes do not hammer the backend.
// Authenticated calls attach a bearer token from a TokenSource; the
// file-backed store in token.go persists tokens across CLI invocations.
package api
