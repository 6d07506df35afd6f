package archive

import "encoding/binary"

// Keyspace:
//   feed/{kind}/m
//   feed/{kind}/e/{seq_be8}

var (
	feedPrefix  = []byte("feed/")
	metaSuffix  = []byte("/m")
	entrySeg    = []byte("/e/")
	entryKeyLen = 8
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func keyMeta(kind string) []byte {
	k := make([]byte, 0, len(feedPrefix)+len(kind)+len(metaSuffix))
	k = append(k, feedPrefix...)
	k = append(k, kind...)
	k = append(k, metaSuffix...)
	return k
}

func keyEntry(kind string, seq uint64) []byte {
	k := make([]byte, 0, len(feedPrefix)+len(kind)+len(entrySeg)+entryKeyLen)
	k = append(k, feedPrefix...)
	k = append(k, kind...)
	k = append(k, entrySeg...)
	k = appendBE8(k, seq)
	return k
}

// entryBounds returns the [low, high) iterator bounds covering every
// entry of a kind.
func entryBounds(kind string) (low, high []byte) {
	low = keyEntry(kind, 0)
	high = keyEntry(kind, ^uint64(0))
	high = append(high, 0x00)
	return low, high
}

func seqFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-entryKeyLen:])
}
