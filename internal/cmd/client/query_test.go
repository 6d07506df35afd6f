package client

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/config"
)

func testDeps(t *testing.T, baseURL string) Deps {
	t.Helper()
	dir := t.TempDir()
	return Deps{
		Config: func() config.Config {
			cfg := config.Default()
			cfg.APIBaseURL = baseURL
			cfg.DataDir = dir
			return cfg
		},
	}
}

func execute(t *testing.T, deps Deps, args ...string) string {
	t.Helper()
	root := NewRoot(deps)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestKPIsCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/kpis" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"total_sales_today":1520,"sales_trend":"up"}`))
	}))
	defer srv.Close()

	out := execute(t, testDeps(t, srv.URL), "kpis")
	if !strings.Contains(out, `"total_sales_today": 1520`) || !strings.Contains(out, `"sales_trend": "up"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAlertsListForwardsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("severity") != "critical" || q.Get("page") != "2" {
			t.Errorf("filters not forwarded: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"alerts":[],"total":0,"page":2,"limit":20,"pages":0}`))
	}))
	defer srv.Close()

	out := execute(t, testDeps(t, srv.URL), "alerts", "list", "--severity", "critical", "--page", "2")
	if !strings.Contains(out, `"page": 2`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer","expires_in":1800,"user":{}}`))
	}))
	defer srv.Close()

	deps := testDeps(t, srv.URL)
	out := execute(t, deps, "login", "--email", "ops@example.com", "--password", "secret")
	if !strings.Contains(out, "status: OK") {
		t.Fatalf("unexpected output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(deps.Config().DataDir, "tokens.json")); err != nil {
		t.Fatalf("token file not written: %v", err)
	}

	out = execute(t, deps, "logout")
	if !strings.Contains(out, "status: OK") {
		t.Fatalf("unexpected output: %s", out)
	}
	if _, err := os.Stat(filepath.Join(deps.Config().DataDir, "tokens.json")); !os.IsNotExist(err) {
		t.Fatalf("token file still present after logout")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	root := NewRoot(testDeps(t, "http://127.0.0.1:1"))
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"login"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error without credentials")
	}
}

func TestHealthCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"status":"healthy","database":"healthy","version":"1.0.0"}`))
	}))
	defer srv.Close()

	out := execute(t, testDeps(t, srv.URL), "health")
	if !strings.Contains(out, `"status": "healthy"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
