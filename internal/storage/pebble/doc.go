// Package pebblestore wraps a Pebble database with the small surface
// the feed archive needs: keyed reads and writes, atomic batches, and
// range iteration, all under one WAL-sync policy chosen at open time.
//
// The archive is a local convenience store, not a system of record, so
// the default policy favors throughput with interval group-commit.
package pebblestore
