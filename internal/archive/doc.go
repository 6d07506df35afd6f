// Package archive persists received feed events in Pebble so sessions
// can be recorded and replayed offline.
//
// Each feed kind gets an append-only log. Keys sort lexicographically
// for range scans:
//   - feed/{kind}/m           (log metadata: last sequence)
//   - feed/{kind}/e/{seq_be8} (entries)
//
// Entries are framed as varint(headerLen) | header | payload |
// crc32c(header|payload); a corrupt entry is skipped on read rather
// than failing the scan. Reads run forward or reverse with a resume
// token, and TrimOlderThan enforces retention.
package archive
