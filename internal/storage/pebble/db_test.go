package pebblestore

import (
	"errors"
	"testing"

	"github.com/cockroachdb/pebble"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestSetGetDelete(t *testing.T) {
	db := openTest(t)
	if err := db.Set([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.Get([]byte("k1"))
	if err != nil || string(got) != "v1" {
		t.Fatalf("get: %q, %v", got, err)
	}
	if err := db.Delete([]byte("k1")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Get([]byte("k1")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBatchAtomicity(t *testing.T) {
	db := openTest(t)
	b := db.NewBatch()
	for _, k := range []string{"a", "b", "c"} {
		if err := b.Set([]byte(k), []byte("x"), nil); err != nil {
			t.Fatalf("batch set: %v", err)
		}
	}
	if err := db.CommitBatch(b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, err := db.Get([]byte(k)); err != nil {
			t.Fatalf("get %q after commit: %v", k, err)
		}
	}
}

func TestIterOrdering(t *testing.T) {
	db := openTest(t)
	for _, k := range []string{"p/3", "p/1", "p/2", "q/1"} {
		if err := db.Set([]byte(k), []byte("x")); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("p/"),
		UpperBound: []byte("p0"),
	})
	if err != nil {
		t.Fatalf("iter: %v", err)
	}
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	want := []string{"p/1", "p/2", "p/3"}
	if len(keys) != len(want) {
		t.Fatalf("keys: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys out of order: %v", keys)
		}
	}
}
