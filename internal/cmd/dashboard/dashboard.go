package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/cmd/client"
	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/feed"
)

// Flags holds command-line flags for the dashboard command.
type Flags struct {
	Refresh     time.Duration
	KPIRefresh  time.Duration
	SalesBuffer int
	AlertBuffer int
	Filter      string
}

// NewCommand creates the `dashboard` command.
func NewCommand(deps client.Deps) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Live terminal dashboard for sales activity",
		Long: `Launch an interactive terminal dashboard showing KPI cards, the
alert summary and a live sales feed.

Examples:
  lulu dashboard
  lulu dashboard --filter 'json.sales >= 100.0'
  lulu dashboard --refresh 250ms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(deps, flags)
		},
	}
	cmd.Flags().DurationVar(&flags.Refresh, "refresh", 500*time.Millisecond, "Screen refresh rate")
	cmd.Flags().DurationVar(&flags.KPIRefresh, "kpi-refresh", 15*time.Second, "KPI refetch interval")
	cmd.Flags().IntVar(&flags.SalesBuffer, "sales-buffer", 0, "Sales pane capacity override")
	cmd.Flags().IntVar(&flags.AlertBuffer, "alert-buffer", 0, "Alert pane capacity override")
	cmd.Flags().StringVar(&flags.Filter, "filter", "", "CEL filter for the sales feed")
	return cmd
}

func run(deps client.Deps, flags *Flags) error {
	sales, err := openFeed(deps, "sales", flags.SalesBuffer, flags.Filter)
	if err != nil {
		return err
	}
	alerts, err := openFeed(deps, "alerts", flags.AlertBuffer, "")
	if err != nil {
		sales.Close()
		return err
	}
	if err := sales.Open(); err != nil {
		return err
	}
	if err := alerts.Open(); err != nil {
		sales.Close()
		return err
	}
	defer sales.Close()
	defer alerts.Close()

	model := newModel(deps, flags, sales, alerts)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

func openFeed(deps client.Deps, name string, buffer int, filter string) (*feed.Subscription, error) {
	kind, ok := feed.Kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown feed %q", name)
	}
	cfg := deps.Config()
	fc := cfg.Feed(name)
	if buffer <= 0 {
		buffer = fc.BufferSize
	}
	return feed.New(feed.Options{
		URL:            strings.TrimRight(cfg.APIBaseURL, "/") + kind.Path,
		Events:         kind.Events,
		BufferSize:     buffer,
		ReconnectDelay: fc.ReconnectDelay(),
		Filter:         filter,
		Normalize:      kind.Normalize,
		Identity:       kind.Identity,
		Dedupe:         kind.Dedupe,
		Logger:         deps.Logger,
	})
}
