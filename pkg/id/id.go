package id

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"
)

// ArrivalID is a 128-bit, lexicographically sortable identifier encoded as
// 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence].
type ArrivalID [16]byte

// Bytes returns the raw 16-byte representation.
func (a ArrivalID) Bytes() []byte { b := make([]byte, 16); copy(b, a[:]); return b }

// String returns the hex form.
func (a ArrivalID) String() string { return hex.EncodeToString(a[:]) }

// Time returns the embedded arrival time at millisecond precision.
func (a ArrivalID) Time() time.Time {
	ms := int64(binary.BigEndian.Uint64(a[0:8]))
	return time.UnixMilli(ms)
}

// IsZero reports whether the ID is the zero value.
func (a ArrivalID) IsZero() bool { return a == ArrivalID{} }

// Compare returns -1, 0, 1 based on lexical comparison.
func (a ArrivalID) Compare(other ArrivalID) int {
	for i := 0; i < 16; i++ {
		if a[i] < other[i] {
			return -1
		}
		if a[i] > other[i] {
			return 1
		}
	}
	return 0
}

// FromBytes reconstructs an ArrivalID from its 16-byte form.
func FromBytes(b []byte) (ArrivalID, bool) {
	var a ArrivalID
	if len(b) != 16 {
		return a, false
	}
	copy(a[:], b)
	return a, true
}

// NowMs returns current time in milliseconds since the Unix epoch.
// Overridable in tests.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// Generator mints monotonically increasing ArrivalIDs per process.
type Generator struct {
	mu       sync.Mutex
	lastMs   int64
	sequence uint64
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// Next returns a new ArrivalID. If the clock goes backwards it pins to the
// last observed millisecond and increments the sequence. If the sequence
// overflows within one millisecond it waits for the next millisecond.
func (g *Generator) Next() ArrivalID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := NowMs()
	if ms < g.lastMs {
		ms = g.lastMs
	}

	if ms == g.lastMs {
		if g.sequence == math.MaxUint64 {
			for {
				ms = NowMs()
				if ms > g.lastMs {
					break
				}
				time.Sleep(time.Millisecond / 8)
			}
			g.sequence = 0
		} else {
			g.sequence++
		}
	} else {
		g.sequence = 0
	}

	g.lastMs = ms

	var a ArrivalID
	binary.BigEndian.PutUint64(a[0:8], uint64(ms))
	binary.BigEndian.PutUint64(a[8:16], g.sequence)
	return a
}
