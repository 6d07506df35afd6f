// Package client provides the `lulu` command-line client.
//
// The CLI talks to the dashboard backend's REST and SSE endpoints to
// inspect sales activity from a terminal. It is primarily intended for
// developers and operators.
//
// Installation
//
//	go install github.com/krish2105/lulu-intelligence-dashboard-sub001/cmd/lulu@latest
//
// # Address configuration
//
// The backend base URL comes from --api, the LULU_API environment
// variable, or the config file, in that order of precedence. The
// default is http://127.0.0.1:8000.
//
// Usage
//
//	lulu login --email ops@example.com --password secret
//	lulu kpis
//	lulu sales latest --limit 10
//	lulu alerts summary
//	lulu alerts list --severity critical --page 1
//	lulu inventory summary --store 3
//	lulu promotions list --status active
//	lulu health
//
//	# Follow a live feed, printing one JSON object per event
//	lulu feed tail --feed sales
//	lulu feed tail --feed alerts --filter 'json.severity == "critical"'
//
//	# Record a feed into the local archive, then replay it offline
//	lulu feed record --feed sales
//	lulu feed replay --feed sales --reverse --limit 20
//	lulu feed kinds
//	lulu feed trim --feed sales --older-than 72h
//
// Notes
//
//   - tail and record reconnect automatically on transport errors with
//     the per-feed fixed delay from configuration; interrupt with
//     Ctrl-C.
//   - --filter accepts a CEL expression over the variables event, json,
//     text, size and now_ms. Non-matching events are skipped silently.
//   - Read endpoints are cached in memory for the lifetime of one
//     invocation, so a single command never refetches the same data.
package client
