package api

// KPIResponse is the dashboard headline metrics payload from
// GET /api/kpis. Dates are "YYYY-MM-DD"; timestamps are RFC 3339.
type KPIResponse struct {
	TotalHistoricalRecords int     `json:"total_historical_records"`
	TotalStreamingRecords  int     `json:"total_streaming_records"`
	TotalSalesToday        int     `json:"total_sales_today"`
	TotalSalesWeek         int     `json:"total_sales_week"`
	TotalSalesMonth        int     `json:"total_sales_month"`
	AverageDailySales      float64 `json:"average_daily_sales"`
	UniqueStores           int     `json:"unique_stores"`
	UniqueItems            int     `json:"unique_items"`
	DataRangeStart         string  `json:"data_range_start"`
	DataRangeEnd           string  `json:"data_range_end"`
	LastStreamTimestamp    string  `json:"last_stream_timestamp"`
	// SalesTrend is "up", "down" or "stable" (last week vs the week
	// before).
	SalesTrend string `json:"sales_trend"`
}

// LatestSale is one record from GET /stream/latest, covering both
// historical and streamed rows.
type LatestSale struct {
	ID          int    `json:"id"`
	EventID     string `json:"event_id,omitempty"`
	Timestamp   string `json:"timestamp"`
	StoreID     int    `json:"store_id"`
	StoreName   string `json:"store_name,omitempty"`
	ItemID      int    `json:"item_id"`
	ItemName    string `json:"item_name,omitempty"`
	Sales       int    `json:"sales"`
	IsStreaming bool   `json:"is_streaming"`
}

// AlertsSummary is the counts payload from GET /api/alerts/summary.
type AlertsSummary struct {
	CriticalAlerts int `json:"critical_alerts"`
	WarningAlerts  int `json:"warning_alerts"`
	InfoAlerts     int `json:"info_alerts"`
	Acknowledged   int `json:"acknowledged"`
	ResolvedToday  int `json:"resolved_today"`
	TotalActive    int `json:"total_active"`
}

// Alert is one entry from GET /api/alerts/list. The backend derives
// alerts from sales data, so the shape is loose; unknown keys land in
// nothing.
type Alert struct {
	ID        string `json:"id"`
	AlertType string `json:"alert_type"`
	Severity  string `json:"severity"`
	Status    string `json:"status"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	StoreID   int    `json:"store_id,omitempty"`
	StoreName string `json:"store_name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AlertsPage is the paginated envelope from GET /api/alerts/list.
type AlertsPage struct {
	Alerts []Alert `json:"alerts"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Pages  int     `json:"pages"`
}

// AlertFilters narrows GET /api/alerts/list. Zero values mean
// unfiltered; Page and Limit default server-side to 1 and 20.
type AlertFilters struct {
	Status    string
	Severity  string
	AlertType string
	StoreID   int
	Page      int
	Limit     int
}

// InventorySummary is the stock overview from GET /api/inventory/summary.
type InventorySummary struct {
	TotalItems       int     `json:"total_items"`
	TotalValue       float64 `json:"total_value"`
	LowStockCount    int     `json:"low_stock_count"`
	OutOfStockCount  int     `json:"out_of_stock_count"`
	OverstockedCount int     `json:"overstocked_count"`
	PendingTransfers int     `json:"pending_transfers"`
	Currency         string  `json:"currency"`
}

// Promotion is one entry from GET /api/promotions/list.
type Promotion struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	DiscountPct  float64 `json:"discount_pct,omitempty"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
	RevenueLift  float64 `json:"revenue_lift,omitempty"`
	Redemptions  int     `json:"redemptions,omitempty"`
	TargetStores []int   `json:"target_stores,omitempty"`
}

// PromotionsPage is the paginated envelope from GET /api/promotions/list.
type PromotionsPage struct {
	Promotions []Promotion `json:"promotions"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Pages      int         `json:"pages"`
}

// LoginResponse carries the token pair from POST /api/auth/login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int            `json:"expires_in"`
	User         map[string]any `json:"user"`
}

// HealthStatus is the liveness payload from GET /health.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
