package feed

import "sort"

// Kind describes one server feed: its subpath under the API origin, the
// named events it emits, and the presentation defaults the dashboard
// applies to it.
type Kind struct {
	Name      string
	Path      string
	Events    []string
	Normalize Normalizer
	Identity  IdentityFunc
	Dedupe    DedupePolicy
}

// Kinds enumerates the feeds the backend exposes. The sales and orders
// feeds keep duplicate ids (each delivery is a distinct sale); alerts and
// inventory dedupe by id since the server re-emits open alerts.
var Kinds = map[string]Kind{
	"sales": {
		Name:      "sales",
		Path:      "/stream/sales",
		Events:    []string{"connected", "sales"},
		Normalize: NormalizeSale,
		Identity:  EventIdentity,
		Dedupe:    KeepAll,
	},
	"orders": {
		Name:      "orders",
		Path:      "/api/stream",
		Events:    []string{"new_sale"},
		Normalize: NormalizeSale,
		Identity:  EventIdentity,
		Dedupe:    KeepAll,
	},
	"alerts": {
		Name:      "alerts",
		Path:      "/stream/alerts",
		Events:    []string{"connected", "alert"},
		Normalize: NormalizeAlert,
		Identity:  EventIdentity,
		Dedupe:    DropDuplicates,
	},
	"inventory": {
		Name:      "inventory",
		Path:      "/stream/inventory",
		Events:    []string{"connected", "inventory_update"},
		Normalize: NormalizeInventory,
		Identity:  EventIdentity,
		Dedupe:    DropDuplicates,
	},
	"employees": {
		Name:      "employees",
		Path:      "/stream/employees",
		Events:    []string{"initial", "update"},
		Normalize: NormalizeEmployee,
		Identity:  EventIdentity,
		Dedupe:    KeepAll,
	},
}

// KindNames returns the known feed names, sorted.
func KindNames() []string {
	names := make([]string, 0, len(Kinds))
	for name := range Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
