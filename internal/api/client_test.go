package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/juju/clock/testclock"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cache"
)

func TestKPIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/kpis" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_historical_records":913000,"total_streaming_records":412,
			"total_sales_today":1520,"total_sales_week":9800,"total_sales_month":41200,
			"average_daily_sales":33.4,"unique_stores":10,"unique_items":50,
			"data_range_start":"2013-01-01","data_range_end":"2017-12-31",
			"last_stream_timestamp":"2026-08-31T10:00:00Z","sales_trend":"up"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.KPIs(context.Background())
	if err != nil {
		t.Fatalf("kpis: %v", err)
	}
	if got.TotalHistoricalRecords != 913000 || got.SalesTrend != "up" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestCachedReads(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"critical_alerts":2,"warning_alerts":5,"info_alerts":1,
			"acknowledged":0,"resolved_today":3,"total_active":8}`))
	}))
	defer srv.Close()

	clk := testclock.NewClock(time.Now())
	c := New(srv.URL, WithCache(cache.New(cache.WithClock(clk))))

	for i := 0; i < 3; i++ {
		got, err := c.AlertsSummary(context.Background())
		if err != nil {
			t.Fatalf("alerts summary: %v", err)
		}
		if got.TotalActive != 8 {
			t.Fatalf("unexpected decode: %+v", got)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("cache did not absorb repeats: %d backend hits", n)
	}

	clk.Advance(31 * time.Second)
	if _, err := c.AlertsSummary(context.Background()); err != nil {
		t.Fatalf("alerts summary after expiry: %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("expired entry not refetched: %d backend hits", n)
	}
}

func TestAlertsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("severity") != "critical" || q.Get("page") != "2" {
			t.Errorf("query not forwarded: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"alerts":[{"id":"a1","severity":"critical","status":"active",
			"title":"Stockout risk"}],"total":21,"page":2,"limit":20,"pages":2}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Alerts(context.Background(), AlertFilters{Severity: "critical", Page: 2})
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if got.Total != 21 || len(got.Alerts) != 1 || got.Alerts[0].Title != "Stockout risk" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestLatestSalesNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit not forwarded: %q", got)
		}
		w.Write([]byte(`[{"id":1,"timestamp":"2026-08-31T10:00:00Z","store_id":3,
			"store_name":"Store 3","item_id":9,"sales":12,"is_streaming":true}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithCache(cache.New()))
	for i := 0; i < 2; i++ {
		rows, err := c.LatestSales(context.Background(), 5)
		if err != nil {
			t.Fatalf("latest sales: %v", err)
		}
		if len(rows) != 1 || rows[0].StoreName != "Store 3" {
			t.Fatalf("unexpected decode: %+v", rows)
		}
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("live endpoint was cached: %d backend hits", n)
	}
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Access denied to this store"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.InventorySummary(context.Background(), 4)
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if se.Code != http.StatusForbidden {
		t.Fatalf("unexpected code: %d", se.Code)
	}
}

func TestBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("missing bearer token: %q", got)
		}
		w.Write([]byte(`{"status":"healthy","database":"healthy","version":"1.0.0"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(StaticToken("tok-123")))
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestLoginAndFileStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer",
			"expires_in":1800,"user":{"email":"ops@example.com"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "ops@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken != "at" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected decode: %+v", resp)
	}

	store := NewFileTokenStore(filepath.Join(t.TempDir(), "lulu"))
	if tok, err := store.Token(); err != nil || tok != "" {
		t.Fatalf("empty store: tok=%q err=%v", tok, err)
	}
	if err := store.Save(resp.AccessToken, resp.RefreshToken); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, err := store.Token(); err != nil || tok != "at" {
		t.Fatalf("round trip: tok=%q err=%v", tok, err)
	}
	if ref, err := store.Refresh(); err != nil || ref != "rt" {
		t.Fatalf("refresh round trip: ref=%q err=%v", ref, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStreamURL(t *testing.T) {
	c := New("http://127.0.0.1:8000/")
	if got := c.StreamURL("/stream/sales"); got != "http://127.0.0.1:8000/stream/sales" {
		t.Fatalf("stream url: %q", got)
	}
	if got := c.StreamURL("stream/alerts"); got != "http://127.0.0.1:8000/stream/alerts" {
		t.Fatalf("stream url without slash: %q", got)
	}
}
