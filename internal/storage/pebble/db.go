package pebblestore

import (
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
)

// SyncMode selects when the WAL is fsynced.
type SyncMode int

const (
	// SyncModeInterval lets Pebble coalesce WAL syncs within a short
	// window. This is the default.
	SyncModeInterval SyncMode = iota
	// SyncModeAlways fsyncs every committed batch.
	SyncModeAlways
	// SyncModeNever leaves syncing entirely to Pebble's own policies.
	SyncModeNever
)

// Options configures Open.
type Options struct {
	// Dir is the database directory; created if absent.
	Dir string
	// Sync is the WAL policy; zero value is interval group-commit.
	Sync SyncMode
	// SyncInterval bounds group-commit latency under SyncModeInterval.
	// Zero means 5ms.
	SyncInterval time.Duration
}

// DB is a Pebble database handle with a fixed sync policy.
type DB struct {
	inner *pebble.DB
	sync  bool
}

// ErrNotFound is returned by Get for absent keys.
var ErrNotFound = pebble.ErrNotFound

// Open creates or opens the database at opts.Dir.
func Open(opts Options) (*DB, error) {
	if opts.Dir == "" {
		return nil, errors.New("pebblestore: Options.Dir is required")
	}
	po := &pebble.Options{}
	if opts.Sync == SyncModeInterval {
		interval := opts.SyncInterval
		if interval <= 0 {
			interval = 5 * time.Millisecond
		}
		po.WALMinSyncInterval = func() time.Duration { return interval }
	}
	inner, err := pebble.Open(opts.Dir, po)
	if err != nil {
		return nil, err
	}
	return &DB{inner: inner, sync: opts.Sync == SyncModeAlways}, nil
}

// Close closes the database. Closing a nil handle is a no-op.
func (db *DB) Close() error {
	if db == nil || db.inner == nil {
		return nil
	}
	return db.inner.Close()
}

// NewBatch starts an atomic multi-key update. Commit with CommitBatch.
func (db *DB) NewBatch() *pebble.Batch {
	return db.inner.NewBatch()
}

// CommitBatch commits b under the configured sync policy.
func (db *DB) CommitBatch(b *pebble.Batch) error {
	if b == nil {
		return errors.New("pebblestore: nil batch")
	}
	mode := pebble.NoSync
	if db.sync {
		mode = pebble.Sync
	}
	return b.Commit(mode)
}

// Set writes a single key through a one-op batch.
func (db *DB) Set(key, value []byte) error {
	b := db.inner.NewBatch()
	defer func() { _ = b.Close() }()
	if err := b.Set(key, value, nil); err != nil {
		return err
	}
	return db.CommitBatch(b)
}

// Delete removes a single key through a one-op batch.
func (db *DB) Delete(key []byte) error {
	b := db.inner.NewBatch()
	defer func() { _ = b.Close() }()
	if err := b.Delete(key, nil); err != nil {
		return err
	}
	return db.CommitBatch(b)
}

// Get returns a copy of the value for key, or ErrNotFound.
func (db *DB) Get(key []byte) ([]byte, error) {
	val, closer, err := db.inner.Get(key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closer.Close() }()
	return append([]byte(nil), val...), nil
}

// NewIter creates an iterator over the given bounds.
func (db *DB) NewIter(opts *pebble.IterOptions) (*pebble.Iterator, error) {
	return db.inner.NewIter(opts)
}

// Compact requests compaction of [start, end), reclaiming space after
// large deletions.
func (db *DB) Compact(start, end []byte) error {
	return db.inner.Compact(start, end, true)
}
