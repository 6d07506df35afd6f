package feed

import (
	"testing"
	"time"
)

func TestSaleFallbackNormalization(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := map[string]any{
		"id":         float64(7),
		"created_at": "2024-01-01T10:00:00",
		"store_id":   float64(3),
	}
	got := NormalizeSale(payload, now)
	if got["timestamp"] != "2024-01-01T10:00:00" {
		t.Fatalf("timestamp should fall back to created_at, got %v", got["timestamp"])
	}
	if got["store_name"] != "Store 3" {
		t.Fatalf("store_name should derive from store_id, got %v", got["store_name"])
	}
	if got["id"] != float64(7) {
		t.Fatalf("id must pass through, got %v", got["id"])
	}
}

func TestSaleExistingFieldsUntouched(t *testing.T) {
	now := time.Now()
	payload := map[string]any{
		"timestamp":  "2024-02-02T00:00:00",
		"store_id":   float64(1),
		"store_name": "Downtown",
		"item_id":    float64(4),
	}
	got := NormalizeSale(payload, now)
	if got["timestamp"] != "2024-02-02T00:00:00" {
		t.Fatalf("existing timestamp replaced: %v", got["timestamp"])
	}
	if got["store_name"] != "Downtown" {
		t.Fatalf("existing store_name replaced: %v", got["store_name"])
	}
	if got["item_name"] != "Item 4" {
		t.Fatalf("missing item_name should derive from item_id, got %v", got["item_name"])
	}
}

func TestSaleDefaultsToNow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got := NormalizeSale(map[string]any{"store_id": float64(2)}, now)
	if got["timestamp"] != now.Format(time.RFC3339) {
		t.Fatalf("timestamp should default to now, got %v", got["timestamp"])
	}
}

func TestSaleDateFallback(t *testing.T) {
	got := NormalizeSale(map[string]any{"date": "2024-03-03"}, time.Now())
	if got["timestamp"] != "2024-03-03" {
		t.Fatalf("timestamp should fall back to date, got %v", got["timestamp"])
	}
}

func TestEventIdentityPrefersEventID(t *testing.T) {
	e := Entry{Payload: map[string]any{"event_id": "abc-123", "id": float64(9)}}
	if got := EventIdentity(e); got != "abc-123" {
		t.Fatalf("expected event_id, got %q", got)
	}
	e = Entry{Payload: map[string]any{"id": float64(9)}}
	if got := EventIdentity(e); got != "9" {
		t.Fatalf("expected id rendered without float suffix, got %q", got)
	}
	if got := EventIdentity(Entry{Payload: map[string]any{}}); got != "" {
		t.Fatalf("expected empty identity, got %q", got)
	}
}

func TestNormalizeInventoryUpdatedAtChain(t *testing.T) {
	got := NormalizeInventory(map[string]any{"item_id": float64(5), "updated_at": "2024-04-04T04:00:00"}, time.Now())
	if got["timestamp"] != "2024-04-04T04:00:00" {
		t.Fatalf("inventory timestamp chain: %v", got["timestamp"])
	}
	if got["item_name"] != "Item 5" {
		t.Fatalf("inventory item_name: %v", got["item_name"])
	}
}

func TestNormalizeEmployeeName(t *testing.T) {
	got := NormalizeEmployee(map[string]any{"employee_id": float64(12)}, time.Now())
	if got["employee_name"] != "Employee 12" {
		t.Fatalf("employee_name: %v", got["employee_name"])
	}
}
