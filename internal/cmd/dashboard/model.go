package dashboard

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/api"
	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cmd/client"
	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/feed"
)

// model holds the Bubble Tea state for the dashboard.
type model struct {
	flags  *Flags
	api    *api.Client
	sales  *feed.Subscription
	alerts *feed.Subscription

	kpis       *api.KPIResponse
	summary    *api.AlertsSummary
	lastKPIErr error
	lastFetch  time.Time

	paused       bool
	lastUpdate   time.Time
	windowWidth  int
	windowHeight int
}

func newModel(deps client.Deps, flags *Flags, sales, alerts *feed.Subscription) model {
	return model{
		flags:      flags,
		api:        deps.API(),
		sales:      sales,
		alerts:     alerts,
		lastUpdate: time.Now(),
	}
}

// tickMsg drives screen refresh.
type tickMsg time.Time

// metricsMsg carries a KPI/alert-summary fetch result.
type metricsMsg struct {
	kpis    *api.KPIResponse
	summary *api.AlertsSummary
	err     error
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.loadMetricsCmd())
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.flags.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadMetricsCmd fetches KPIs and the alert summary off the UI loop.
func (m model) loadMetricsCmd() tea.Cmd {
	apiClient := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		kpis, err := apiClient.KPIs(ctx)
		if err != nil {
			return metricsMsg{err: err}
		}
		summary, err := apiClient.AlertsSummary(ctx)
		if err != nil {
			return metricsMsg{kpis: kpis, err: err}
		}
		return metricsMsg{kpis: kpis, summary: summary}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		case "r":
			return m, m.loadMetricsCmd()
		}

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		m.lastUpdate = time.Time(msg)
		cmds := []tea.Cmd{m.tickCmd()}
		if time.Since(m.lastFetch) >= m.flags.KPIRefresh {
			m.lastFetch = time.Now()
			cmds = append(cmds, m.loadMetricsCmd())
		}
		return m, tea.Batch(cmds...)

	case metricsMsg:
		if msg.kpis != nil {
			m.kpis = msg.kpis
		}
		if msg.summary != nil {
			m.summary = msg.summary
		}
		m.lastKPIErr = msg.err
		m.lastFetch = time.Now()
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderKPICards(),
		m.renderAlertsPane(),
		m.renderSalesPane(),
		m.renderFooter(),
	)
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	liveStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	downStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pendingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

func connectionBadge(snap feed.Snapshot, paused bool) string {
	if paused {
		return pendingStyle.Render("PAUSED")
	}
	switch snap.State {
	case feed.StateOpen:
		return liveStyle.Render("LIVE")
	case feed.StateConnecting:
		return pendingStyle.Render("CONNECTING")
	default:
		if snap.LastErr != "" {
			return downStyle.Render("RECONNECTING")
		}
		return downStyle.Render("OFFLINE")
	}
}

func (m model) renderHeader() string {
	snap := m.sales.Snapshot()
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("Sales Dashboard"),
		"  ",
		connectionBadge(snap, m.paused),
		"  ",
		dimStyle.Render(fmt.Sprintf("updated %s", m.lastUpdate.Format("15:04:05"))),
	)
	if snap.LastErr != "" {
		line = lipgloss.JoinVertical(lipgloss.Left, line,
			dimStyle.Render("last error: "+snap.LastErr))
	}
	return line
}

func (m model) renderKPICards() string {
	if m.kpis == nil {
		if m.lastKPIErr != nil {
			return dimStyle.Render("\n  KPIs unavailable: " + m.lastKPIErr.Error() + "\n")
		}
		return dimStyle.Render("\n  Loading KPIs...\n")
	}
	k := m.kpis
	trend := "→"
	switch k.SalesTrend {
	case "up":
		trend = "↑"
	case "down":
		trend = "↓"
	}
	cards := []string{
		cardStyle.Render(fmt.Sprintf("Today\n%d %s", k.TotalSalesToday, trend)),
		cardStyle.Render(fmt.Sprintf("Week\n%d", k.TotalSalesWeek)),
		cardStyle.Render(fmt.Sprintf("Month\n%d", k.TotalSalesMonth)),
		cardStyle.Render(fmt.Sprintf("Avg/Day\n%.1f", k.AverageDailySales)),
		cardStyle.Render(fmt.Sprintf("Stores\n%d", k.UniqueStores)),
		cardStyle.Render(fmt.Sprintf("Items\n%d", k.UniqueItems)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m model) renderAlertsPane() string {
	header := titleStyle.Render("Alerts")
	var line string
	if m.summary != nil {
		line = fmt.Sprintf("critical %d | warning %d | info %d | active %d",
			m.summary.CriticalAlerts, m.summary.WarningAlerts,
			m.summary.InfoAlerts, m.summary.TotalActive)
	} else {
		line = dimStyle.Render("no summary yet")
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Left, header, "  ", line)}
	snap := m.alerts.Snapshot()
	limit := 3
	for i, e := range snap.Buffer {
		if i >= limit {
			break
		}
		severity, _ := e.Payload["severity"].(string)
		msgText, _ := e.Payload["message"].(string)
		if msgText == "" {
			msgText, _ = e.Payload["title"].(string)
		}
		style := dimStyle
		switch severity {
		case "critical":
			style = downStyle
		case "warning":
			style = pendingStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("  %s %s",
			e.Received.Format("15:04:05"), truncate(msgText, 70))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderSalesPane() string {
	snap := m.sales.Snapshot()
	header := titleStyle.Render(fmt.Sprintf("Live Sales (%d buffered)", len(snap.Buffer)))
	if len(snap.Buffer) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			dimStyle.Render("  waiting for sales events..."))
	}

	cols := dimStyle.Render(fmt.Sprintf("  %-8s  %-12s  %-20s  %s", "TIME", "STORE", "ITEM", "QTY"))
	rows := []string{header, cols}
	maxRows := m.windowHeight - 16
	if maxRows < 5 {
		maxRows = 5
	}
	for i, e := range snap.Buffer {
		if i >= maxRows {
			break
		}
		store, _ := e.Payload["store_name"].(string)
		item, _ := e.Payload["item_name"].(string)
		qty := e.Payload["sales"]
		rows = append(rows, fmt.Sprintf("  %-8s  %-12s  %-20s  %v",
			e.Received.Format("15:04:05"), truncate(store, 12), truncate(item, 20), qty))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderFooter() string {
	return dimStyle.Render("Controls: [Space] Pause | [r] Refresh KPIs | [q] Quit")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
