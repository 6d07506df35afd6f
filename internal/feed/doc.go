// Package feed implements the live streaming client for the Lulu
// dashboard: one Subscription per server-push (SSE) endpoint, presented
// to UI code as a pollable buffer plus a connection-health flag.
//
// # Overview
//
// A Subscription owns one long-lived HTTP event-stream connection. It
// parses named SSE events, normalizes their JSON payloads (timestamp and
// display-name fallbacks), stamps each with a sortable arrival id, and
// keeps the most recent entries in a fixed-capacity newest-first Window.
// Transport failures flip the connection state to Closed and arm a fixed
// reconnect delay; the client retries indefinitely until Close is called.
// Malformed payloads are dropped and logged without disturbing the
// connection.
//
// API surface
//
//	s, err := feed.New(feed.Options{
//	    URL:            base + "/stream/sales",
//	    Events:         []string{"connected", "sales"},
//	    BufferSize:     50,
//	    ReconnectDelay: time.Second,
//	})
//	s.OnEvent(func(e feed.Entry, duplicate bool) bool { return true })
//	if err := s.Open(); err != nil { ... }
//	defer s.Close()
//
//	snap := s.Snapshot() // {Buffer, State, LastErr}, non-blocking
//
// Duplicate suppression is a caller-supplied policy (DropDuplicates for
// the alerts feed, KeepAll for sales), never baked in. Close is
// idempotent and synchronously prevents any late transport callback from
// mutating the buffer or state.
package feed
