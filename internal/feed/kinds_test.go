package feed

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestKindRoutes(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		events []string
	}{
		{"sales", "/stream/sales", []string{"connected", "sales"}},
		// Legacy streaming router: registered at the prefix itself, no
		// trailing segment.
		{"orders", "/api/stream", []string{"new_sale"}},
		{"alerts", "/stream/alerts", []string{"connected", "alert"}},
		{"inventory", "/stream/inventory", []string{"connected", "inventory_update"}},
		// The employee stream names its events initial and update; the
		// pub/sub channel behind it is not an event name.
		{"employees", "/stream/employees", []string{"initial", "update"}},
	}
	for _, tc := range cases {
		kind, ok := Kinds[tc.name]
		if !ok {
			t.Fatalf("kind %q missing from registry", tc.name)
		}
		if kind.Name != tc.name {
			t.Fatalf("kind %q: Name field is %q", tc.name, kind.Name)
		}
		if kind.Path != tc.path {
			t.Fatalf("kind %q: want path %q, got %q", tc.name, tc.path, kind.Path)
		}
		if len(kind.Events) != len(tc.events) {
			t.Fatalf("kind %q: want events %v, got %v", tc.name, tc.events, kind.Events)
		}
		for i, ev := range tc.events {
			if kind.Events[i] != ev {
				t.Fatalf("kind %q: want events %v, got %v", tc.name, tc.events, kind.Events)
			}
		}
		if kind.Normalize == nil || kind.Identity == nil || kind.Dedupe == nil {
			t.Fatalf("kind %q: incomplete defaults: %+v", tc.name, kind)
		}
	}
}

func TestEmployeeKindBuffersBothEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		writeSSE(w, "initial", `{"employee_id":7,"store_id":1,"sales_count":3}`)
		writeSSE(w, "update", `{"employee_id":7,"store_id":1,"sales_count":4}`)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	kind := Kinds["employees"]
	s := newSub(t, Options{
		URL:        srv.URL,
		Events:     kind.Events,
		BufferSize: 10,
		Normalize:  kind.Normalize,
		Identity:   kind.Identity,
		Dedupe:     kind.Dedupe,
	})
	if err := s.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	waitFor(t, "both employee events", func() bool { return len(s.Snapshot().Buffer) == 2 })

	snap := s.Snapshot()
	if snap.Buffer[0].Event != "update" || snap.Buffer[1].Event != "initial" {
		t.Fatalf("want newest-first update,initial; got %s,%s", snap.Buffer[0].Event, snap.Buffer[1].Event)
	}
	if got := snap.Buffer[0].Payload["employee_name"]; got != "Employee 7" {
		t.Fatalf("want employee name fallback, got %v", got)
	}
}
