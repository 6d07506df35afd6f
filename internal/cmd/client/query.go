package client

import (
	"github.com/spf13/cobra"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/api"
)

// newKPIsCommand constructs the `kpis` command.
func newKPIsCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Show dashboard headline metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := deps.API().KPIs(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// newSalesCommand constructs the `sales` command group.
func newSalesCommand(deps Deps) *cobra.Command {
	salesCmd := &cobra.Command{Use: "sales", Short: "Sales queries"}

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "List the most recent sales records, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			rows, err := deps.API().LatestSales(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rows)
		},
	}
	latestCmd.Flags().Int("limit", 20, "Number of records (max 100)")
	salesCmd.AddCommand(latestCmd)
	return salesCmd
}

// newAlertsCommand constructs the `alerts` command group.
func newAlertsCommand(deps Deps) *cobra.Command {
	alertsCmd := &cobra.Command{Use: "alerts", Short: "Alert queries"}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show active alert counts by severity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := deps.API().AlertsSummary(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts with filtering and pagination",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var f api.AlertFilters
			f.Status, _ = cmd.Flags().GetString("status")
			f.Severity, _ = cmd.Flags().GetString("severity")
			f.AlertType, _ = cmd.Flags().GetString("type")
			f.StoreID, _ = cmd.Flags().GetInt("store")
			f.Page, _ = cmd.Flags().GetInt("page")
			f.Limit, _ = cmd.Flags().GetInt("limit")
			out, err := deps.API().Alerts(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	listCmd.Flags().String("status", "", "Filter by status: active|acknowledged|resolved")
	listCmd.Flags().String("severity", "", "Filter by severity: critical|warning|info")
	listCmd.Flags().String("type", "", "Filter by alert type")
	listCmd.Flags().Int("store", 0, "Filter by store id")
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Int("limit", 20, "Page size (max 100)")

	alertsCmd.AddCommand(summaryCmd, listCmd)
	return alertsCmd
}

// newInventoryCommand constructs the `inventory` command group.
func newInventoryCommand(deps Deps) *cobra.Command {
	invCmd := &cobra.Command{Use: "inventory", Short: "Inventory queries"}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show stock metrics, optionally for one store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _ := cmd.Flags().GetInt("store")
			out, err := deps.API().InventorySummary(cmd.Context(), store)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	summaryCmd.Flags().Int("store", 0, "Store id (0 = all accessible stores)")
	invCmd.AddCommand(summaryCmd)
	return invCmd
}

// newPromotionsCommand constructs the `promotions` command group.
func newPromotionsCommand(deps Deps) *cobra.Command {
	promoCmd := &cobra.Command{Use: "promotions", Short: "Promotion queries"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List promotions with filtering and pagination",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			category, _ := cmd.Flags().GetString("category")
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")
			out, err := deps.API().Promotions(cmd.Context(), status, category, page, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	listCmd.Flags().String("status", "", "Filter by status: active|scheduled|expired")
	listCmd.Flags().String("category", "", "Filter by category")
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Int("limit", 20, "Page size (max 100)")
	promoCmd.AddCommand(listCmd)
	return promoCmd
}

// newHealthCommand constructs the `health` command.
func newHealthCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe backend liveness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := deps.API().Health(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
