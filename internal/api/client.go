package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cache"
	logpkg "github.com/krish2105/lulu-intelligence-dashboard-sub001/pkg/log"
)

// StatusError reports a non-2xx backend response. Body holds the raw
// response body, truncated for logging.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("api: unexpected status %d: %s", e.Code, e.Body)
}

// Client talks to the dashboard backend over HTTP.
type Client struct {
	base   string
	http   *http.Client
	cache  *cache.Cache
	tokens TokenSource
	logger logpkg.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache attaches a response cache. Without one every read hits the
// backend.
func WithCache(cc *cache.Cache) Option {
	return func(c *Client) { c.cache = cc }
}

// WithTokenSource attaches bearer-token auth to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logpkg.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for the backend at base (e.g.
// "http://127.0.0.1:8000").
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logpkg.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.base }

// StreamURL builds the absolute URL for a stream path like
// "/stream/sales".
func (c *Client) StreamURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base + path
}

// Login authenticates and returns the token pair. When the client has a
// persisting TokenSource, the caller is responsible for saving the
// tokens into it.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := json.Marshal(map[string]any{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out LoginResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// KPIs fetches the dashboard headline metrics. Cached briefly; KPI data
// is the fastest-moving cached family.
func (c *Client) KPIs(ctx context.Context) (*KPIResponse, error) {
	var out KPIResponse
	if err := c.getJSON(ctx, "/api/kpis", nil, "kpis", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestSales fetches the most recent sales rows, newest first. Not
// cached: the endpoint exists to show live movement.
func (c *Client) LatestSales(ctx context.Context, limit int) ([]LatestSale, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	var out []LatestSale
	if err := c.getJSON(ctx, "/stream/latest", params, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AlertsSummary fetches active-alert counts by severity.
func (c *Client) AlertsSummary(ctx context.Context) (*AlertsSummary, error) {
	var out AlertsSummary
	if err := c.getJSON(ctx, "/api/alerts/summary", nil, "alerts_summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts fetches a filtered, paginated alert listing.
func (c *Client) Alerts(ctx context.Context, f AlertFilters) (*AlertsPage, error) {
	params := map[string]string{}
	if f.Status != "" {
		params["status"] = f.Status
	}
	if f.Severity != "" {
		params["severity"] = f.Severity
	}
	if f.AlertType != "" {
		params["alert_type"] = f.AlertType
	}
	if f.StoreID > 0 {
		params["store_id"] = strconv.Itoa(f.StoreID)
	}
	if f.Page > 0 {
		params["page"] = strconv.Itoa(f.Page)
	}
	if f.Limit > 0 {
		params["limit"] = strconv.Itoa(f.Limit)
	}
	var out AlertsPage
	if err := c.getJSON(ctx, "/api/alerts/list", params, "alerts_list", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InventorySummary fetches stock metrics, optionally scoped to one
// store (storeID > 0).
func (c *Client) InventorySummary(ctx context.Context, storeID int) (*InventorySummary, error) {
	params := map[string]string{}
	if storeID > 0 {
		params["store_id"] = strconv.Itoa(storeID)
	}
	var out InventorySummary
	if err := c.getJSON(ctx, "/api/inventory/summary", params, "inventory_summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Promotions fetches a filtered, paginated promotion listing.
func (c *Client) Promotions(ctx context.Context, status, category string, page, limit int) (*PromotionsPage, error) {
	params := map[string]string{}
	if status != "" {
		params["status"] = status
	}
	if category != "" {
		params["category"] = category
	}
	if page > 0 {
		params["page"] = strconv.Itoa(page)
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	var out PromotionsPage
	if err := c.getJSON(ctx, "/api/promotions/list", params, "promotions_list", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the backend liveness endpoint. Never cached.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.getJSON(ctx, "/health", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON performs a GET, consulting the cache under cachePrefix when
// one is attached (empty prefix bypasses caching), and decodes the body
// into out.
func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, cachePrefix string, out any) error {
	var key string
	if c.cache != nil && cachePrefix != "" {
		key = cache.Key(cachePrefix, params)
		if body, ok := c.cache.Get(key); ok {
			c.logger.Debug("cache hit", logpkg.Str("key", key))
			return json.Unmarshal(body, out)
		}
	}

	u := c.base + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	body, err := c.doRaw(req)
	if err != nil {
		return err
	}
	if key != "" {
		c.cache.Set(key, body)
	}
	return json.Unmarshal(body, out)
}

// do executes req and decodes a JSON response into out.
func (c *Client) do(req *http.Request, out any) error {
	body, err := c.doRaw(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("api: token source: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if len(msg) > 256 {
			msg = msg[:256]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(msg)}
	}
	return body, nil
}
