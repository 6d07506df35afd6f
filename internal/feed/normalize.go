package feed

import (
	"fmt"
	"time"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/pkg/id"
)

// Entry is one normalized, buffered record received over the push channel.
type Entry struct {
	// ArrivalID totally orders entries by arrival, even when payload
	// timestamps are out of order.
	ArrivalID id.ArrivalID
	// Event is the transport-level event name (sales, new_sale, alert, ...).
	Event string
	// Payload is the normalized domain record.
	Payload map[string]any
	// Received is the local arrival time.
	Received time.Time
}

// Normalizer rewrites a decoded payload into presentation shape. It must
// return the (possibly same) map; now is the arrival time used for
// timestamp defaulting.
type Normalizer func(payload map[string]any, now time.Time) map[string]any

// IdentityFunc extracts the identity used for duplicate detection.
// Returning "" means the entry has no identity and never matches.
type IdentityFunc func(e Entry) string

// EventIdentity is the default identity: the payload's event_id when
// present, else its id.
func EventIdentity(e Entry) string {
	if v, ok := e.Payload["event_id"]; ok && v != nil {
		return displayID(v)
	}
	if v, ok := e.Payload["id"]; ok && v != nil {
		return displayID(v)
	}
	return ""
}

// timestampFallback substitutes payload[target] with the first present
// field in chain, defaulting to now. This is a presentation contract, not
// a domain invariant: backdated values pass through untouched.
func timestampFallback(payload map[string]any, target string, chain []string, now time.Time) {
	if v, ok := payload[target]; ok && v != nil && v != "" {
		return
	}
	for _, name := range chain {
		if v, ok := payload[name]; ok && v != nil && v != "" {
			payload[target] = v
			return
		}
	}
	payload[target] = now.Format(time.RFC3339)
}

// nameFallback fills payload[nameField] with prefix + the foreign key when
// only the id is present, e.g. store_name = "Store 3".
func nameFallback(payload map[string]any, nameField, idField, prefix string) {
	if v, ok := payload[nameField]; ok && v != nil && v != "" {
		return
	}
	idv, ok := payload[idField]
	if !ok || idv == nil {
		return
	}
	payload[nameField] = prefix + " " + displayID(idv)
}

// displayID renders a JSON identity value without a float suffix
// (encoding/json decodes numbers into float64).
func displayID(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%v", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NormalizeSale normalizes a sale payload: timestamp falls back to
// created_at then date, store/item display names are derived from their
// foreign keys when absent.
func NormalizeSale(payload map[string]any, now time.Time) map[string]any {
	timestampFallback(payload, "timestamp", []string{"created_at", "date"}, now)
	nameFallback(payload, "store_name", "store_id", "Store")
	nameFallback(payload, "item_name", "item_id", "Item")
	return payload
}

// NormalizeAlert normalizes an alert payload.
func NormalizeAlert(payload map[string]any, now time.Time) map[string]any {
	timestampFallback(payload, "timestamp", []string{"created_at"}, now)
	nameFallback(payload, "store_name", "store_id", "Store")
	nameFallback(payload, "item_name", "item_id", "Item")
	return payload
}

// NormalizeInventory normalizes an inventory update payload.
func NormalizeInventory(payload map[string]any, now time.Time) map[string]any {
	timestampFallback(payload, "timestamp", []string{"updated_at", "created_at"}, now)
	nameFallback(payload, "item_name", "item_id", "Item")
	nameFallback(payload, "store_name", "store_id", "Store")
	return payload
}

// NormalizeEmployee normalizes an employee performance payload.
func NormalizeEmployee(payload map[string]any, now time.Time) map[string]any {
	timestampFallback(payload, "timestamp", []string{"updated_at", "created_at"}, now)
	nameFallback(payload, "employee_name", "employee_id", "Employee")
	nameFallback(payload, "store_name", "store_id", "Store")
	return payload
}
