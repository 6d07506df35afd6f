// Package dashboard is the interactive terminal dashboard.
//
// It renders KPI cards, the alert summary, and a live sales pane fed by
// an SSE subscription, refreshing in place like top. The connection
// indicator reflects the subscription state, so a dropped backend shows
// as reconnecting rather than freezing the screen.
//
// Controls: space pauses the live pane, r forces a KPI refresh, q or
// Ctrl-C quits.
package dashboard
