package feed

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// celFilter wraps a compiled CEL program evaluated once per received
// event, before normalization. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

// newCELFilter compiles expr against the event variables. An empty
// expression yields a disabled filter.
func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		// Transport event name: sales, new_sale, alert, ...
		cel.Variable("event", cel.StringType),
		// Parsed JSON payload (map/list/values) for field filtering
		cel.Variable("json", cel.DynType),
		// Raw payload text and size
		cel.Variable("text", cel.StringType),
		cel.Variable("size", cel.IntType),
		// Current time in ms for windowed filters
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the expression against one event. Evaluation errors
// count as non-matches.
func (f celFilter) Eval(eventType string, payload map[string]any, raw string) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"event":  eventType,
		"json":   payload,
		"text":   raw,
		"size":   int64(len(raw)),
		"now_ms": time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
