package id

import (
	"testing"
	"time"
)

func TestOrderingMonotonic(t *testing.T) {
	g := NewGenerator()
	NowMs = func() int64 { return 1000 }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next()
	b := g.Next()
	if a.Compare(b) >= 0 {
		t.Fatalf("expected a<b")
	}
}

func TestClockRegressionGuard(t *testing.T) {
	g := NewGenerator()
	ms := int64(1000)
	NowMs = func() int64 { return ms }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next()
	ms = 900 // clock went backwards
	b := g.Next()
	if a.Compare(b) >= 0 {
		t.Fatalf("expected b>a despite clock regression")
	}
}

func TestTimeRoundTrip(t *testing.T) {
	g := NewGenerator()
	NowMs = func() int64 { return 1726833600000 }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next()
	if got := a.Time().UnixMilli(); got != 1726833600000 {
		t.Fatalf("embedded time mismatch: %d", got)
	}
	back, ok := FromBytes(a.Bytes())
	if !ok || back != a {
		t.Fatalf("bytes round trip failed")
	}
	if a.IsZero() {
		t.Fatalf("generated id should not be zero")
	}
}
