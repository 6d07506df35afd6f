package cache

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"
)

func TestKeyStability(t *testing.T) {
	a := Key("alerts_list", map[string]string{"severity": "critical", "page": "2"})
	b := Key("alerts_list", map[string]string{"page": "2", "severity": "critical"})
	if a != b {
		t.Fatalf("parameter order changed the key: %q vs %q", a, b)
	}
	c := Key("alerts_list", map[string]string{"page": "3", "severity": "critical"})
	if a == c {
		t.Fatalf("different parameters collided: %q", a)
	}
	if got := Key("kpis", nil); got != "kpis" {
		t.Fatalf("unparameterized key: want %q, got %q", "kpis", got)
	}
}

func TestGetSetExpiry(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	c := New(WithClock(clk))

	key := Key("kpis", nil)
	c.Set(key, []byte(`{"total_sales":42}`))

	body, ok := c.Get(key)
	if !ok || string(body) != `{"total_sales":42}` {
		t.Fatalf("expected fresh hit, got ok=%v body=%q", ok, body)
	}

	clk.Advance(14 * time.Second)
	if _, ok := c.Get(key); !ok {
		t.Fatalf("entry expired before its 15s TTL")
	}
	clk.Advance(2 * time.Second)
	if _, ok := c.Get(key); ok {
		t.Fatalf("entry survived past its TTL")
	}
	// Expired entry was removed on read.
	if got := c.Stats().Entries; got != 0 {
		t.Fatalf("expired entry retained: %d entries", got)
	}
}

func TestPerPrefixTTL(t *testing.T) {
	cases := []struct {
		prefix string
		want   time.Duration
	}{
		{"kpis", 15 * time.Second},
		{"alerts_summary", 30 * time.Second},
		{"inventory_summary", 60 * time.Second},
		{"inventory_categories", 120 * time.Second},
		{"something_new", DefaultTTL},
	}
	c := New()
	for _, tc := range cases {
		if got := c.TTLFor(tc.prefix); got != tc.want {
			t.Fatalf("TTLFor(%q): want %v, got %v", tc.prefix, tc.want, got)
		}
	}
}

func TestDefaultTTLOverride(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	c := New(WithClock(clk), WithDefaultTTL(5*time.Second))
	c.Set("custom_prefix", []byte("x"))
	clk.Advance(4 * time.Second)
	if _, ok := c.Get("custom_prefix"); !ok {
		t.Fatalf("entry expired before the overridden TTL")
	}
	clk.Advance(2 * time.Second)
	if _, ok := c.Get("custom_prefix"); ok {
		t.Fatalf("entry survived the overridden TTL")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New()
	c.Set(Key("alerts_list", map[string]string{"page": "1"}), []byte("a"))
	c.Set(Key("alerts_list", map[string]string{"page": "2"}), []byte("b"))
	c.Set(Key("alerts_summary", nil), []byte("c"))

	if n := c.Invalidate("alerts_list"); n != 2 {
		t.Fatalf("invalidate alerts_list: want 2, got %d", n)
	}
	if _, ok := c.Get(Key("alerts_summary", nil)); !ok {
		t.Fatalf("invalidate removed an unrelated prefix")
	}
	// Prefix matching is exact on the family, not a raw string prefix.
	c.Set(Key("alerts", nil), []byte("d"))
	if n := c.Invalidate("alert"); n != 0 {
		t.Fatalf("partial prefix matched %d entries", n)
	}
}

func TestStats(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	c := New(WithClock(clk))
	c.Set("kpis", []byte("x"))
	c.Get("kpis")
	c.Get("missing")
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Entries != 1 {
		t.Fatalf("stats: %+v", s)
	}
	c.Clear()
	if got := c.Stats().Entries; got != 0 {
		t.Fatalf("clear left %d entries", got)
	}
}
