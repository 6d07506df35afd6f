package archive

import (
	"encoding/binary"
	"hash/crc32"
)

// Record is one archived feed event. Payload is the normalized event
// body as JSON.
type Record struct {
	Event      string
	ReceivedMs int64
	Payload    []byte
}

// Entry framing: varint(headerLen) | header | payload | crc32c.
// The header is 8 bytes of big-endian receive time followed by the
// event name.

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func encodeRecord(r Record) []byte {
	header := make([]byte, 0, 8+len(r.Event))
	header = appendBE8(header, uint64(r.ReceivedMs))
	header = append(header, r.Event...)

	out := make([]byte, 0, 10+len(header)+len(r.Payload)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(header)))
	out = append(out, tmp[:n]...)
	out = append(out, header...)
	out = append(out, r.Payload...)

	crc := crc32.Update(0, castagnoli, header)
	crc = crc32.Update(crc, castagnoli, r.Payload)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	return append(out, crcb[:]...)
}

func decodeRecord(b []byte) (Record, bool) {
	if len(b) < 1+8+4 {
		return Record{}, false
	}
	hlen, n := binary.Uvarint(b)
	if n <= 0 || hlen < 8 || n+int(hlen)+4 > len(b) {
		return Record{}, false
	}
	header := b[n : n+int(hlen)]
	payload := b[n+int(hlen) : len(b)-4]

	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, header)
	crc = crc32.Update(crc, castagnoli, payload)
	if crc != expect {
		return Record{}, false
	}
	return Record{
		Event:      string(header[8:]),
		ReceivedMs: int64(binary.BigEndian.Uint64(header[:8])),
		Payload:    append([]byte(nil), payload...),
	}, true
}
