// Package id provides a 128-bit, lexicographically sortable arrival
// identifier.
//
// # Format
//
// An ArrivalID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes
// sequence]. Byte-wise comparison preserves arrival order, and IDs minted
// within the same millisecond remain strictly increasing by sequence. The
// feed client stamps every received event with one so that buffered
// entries and archived records share a total order even when the server
// emits backdated payloads.
//
// # Monotonicity
//
// The Generator is monotonic per process:
//   - If the system clock regresses, it pins to the last seen millisecond
//     and keeps incrementing the sequence.
//   - If the sequence would overflow within one millisecond, it waits for
//     the next millisecond before emitting.
//
// Usage
//
//	g := id.NewGenerator()
//	aid := g.Next()
//	key := aid.Bytes()  // 16-byte representation, pebble-key friendly
//	s := aid.String()   // hex
package id
