package archive

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/storage/pebble"
)

// Token is a resume position for Read: the next sequence to visit.
// The zero token means "from the start" (forward) or "from the end"
// (reverse).
type Token uint64

// Store is the key-value surface a Log runs on. *pebblestore.DB
// satisfies it.
type Store interface {
	Get(key []byte) ([]byte, error)
	NewBatch() *pebble.Batch
	CommitBatch(b *pebble.Batch) error
	NewIter(opts *pebble.IterOptions) (*pebble.Iterator, error)
	Compact(start, end []byte) error
}

// Log is the append-only archive for one feed kind.
type Log struct {
	db   Store
	kind string

	mu      sync.Mutex
	lastSeq uint64
}

// OpenLog opens the archive log for kind, loading the last sequence
// from metadata when present.
func OpenLog(db Store, kind string) (*Log, error) {
	l := &Log{db: db, kind: kind}
	meta, err := db.Get(keyMeta(kind))
	if err == nil && len(meta) >= 8 {
		l.lastSeq = binary.BigEndian.Uint64(meta[:8])
	} else if err != nil && err != pebblestore.ErrNotFound {
		return nil, err
	}
	return l, nil
}

// Kind returns the feed kind this log archives.
func (l *Log) Kind() string { return l.kind }

// LastSeq returns the highest assigned sequence, 0 when empty.
func (l *Log) LastSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeq
}

// Append writes recs as one atomic batch and returns their assigned
// sequences, which are contiguous and start after any prior appends.
func (l *Log) Append(recs ...Record) ([]uint64, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.db.NewBatch()
	defer func() { _ = b.Close() }()

	// Nothing is durable until CommitBatch, so any failure restores
	// lastSeq to the stored high-water mark.
	prev := l.lastSeq
	seqs := make([]uint64, len(recs))
	for i, r := range recs {
		l.lastSeq++
		if err := b.Set(keyEntry(l.kind, l.lastSeq), encodeRecord(r), nil); err != nil {
			l.lastSeq = prev
			return nil, err
		}
		seqs[i] = l.lastSeq
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], l.lastSeq)
	if err := b.Set(keyMeta(l.kind), meta[:], nil); err != nil {
		l.lastSeq = prev
		return nil, err
	}
	if err := l.db.CommitBatch(b); err != nil {
		l.lastSeq = prev
		return nil, err
	}
	return seqs, nil
}

// ReadOptions bounds a Read.
type ReadOptions struct {
	// Start is the first sequence to visit; zero means the log start
	// (forward) or end (reverse).
	Start Token
	// Limit caps returned items; zero means unlimited.
	Limit int
	// Reverse scans newest to oldest.
	Reverse bool
}

// Item is one archived entry with its sequence.
type Item struct {
	Seq    uint64
	Record Record
}

// Read scans the log and returns items plus the resume token for the
// next Read. A zero next token means the scan is exhausted. Corrupt
// entries are skipped.
func (l *Log) Read(opts ReadOptions) ([]Item, Token, error) {
	low, high := entryBounds(l.kind)
	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = iter.Close() }()

	items := make([]Item, 0, 16)
	if opts.Reverse {
		ok := iter.Last()
		if opts.Start != 0 {
			ok = iter.SeekLT(keyEntry(l.kind, uint64(opts.Start)+1))
		}
		for ; ok && (opts.Limit == 0 || len(items) < opts.Limit); ok = iter.Prev() {
			seq := seqFromKey(iter.Key())
			if rec, valid := decodeRecord(iter.Value()); valid {
				items = append(items, Item{Seq: seq, Record: rec})
			}
		}
		if ok {
			return items, Token(seqFromKey(iter.Key())), nil
		}
		return items, 0, nil
	}

	ok := iter.First()
	if opts.Start != 0 {
		ok = iter.SeekGE(keyEntry(l.kind, uint64(opts.Start)))
	}
	for ; ok && (opts.Limit == 0 || len(items) < opts.Limit); ok = iter.Next() {
		seq := seqFromKey(iter.Key())
		if rec, valid := decodeRecord(iter.Value()); valid {
			items = append(items, Item{Seq: seq, Record: rec})
		}
	}
	if ok {
		return items, Token(seqFromKey(iter.Key())), nil
	}
	return items, 0, nil
}

// TrimOlderThan deletes entries received before cutoffMs and returns
// the count removed. Entries are appended in arrival order, so the scan
// stops at the first retained entry.
func (l *Log) TrimOlderThan(cutoffMs int64) (int, error) {
	low, high := entryBounds(l.kind)
	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: high})
	if err != nil {
		return 0, err
	}

	b := l.db.NewBatch()
	defer func() { _ = b.Close() }()
	deleted := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		rec, valid := decodeRecord(iter.Value())
		if valid && rec.ReceivedMs >= cutoffMs {
			break
		}
		if err := b.Delete(append([]byte(nil), iter.Key()...), nil); err != nil {
			_ = iter.Close()
			return 0, err
		}
		deleted++
	}
	if err := iter.Close(); err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, nil
	}
	if err := l.db.CommitBatch(b); err != nil {
		return 0, err
	}
	return deleted, l.db.Compact(low, high)
}

// ListKinds scans metadata keys and returns every archived feed kind.
func ListKinds(db Store) ([]string, error) {
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: feedPrefix,
		UpperBound: []byte("feed0"),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = iter.Close() }()

	var kinds []string
	for ok := iter.First(); ok; ok = iter.Next() {
		key := string(iter.Key())
		if !strings.HasSuffix(key, string(metaSuffix)) {
			continue
		}
		kind := strings.TrimSuffix(strings.TrimPrefix(key, string(feedPrefix)), string(metaSuffix))
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
