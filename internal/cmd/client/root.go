package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs the command tree for the dashboard client. It
// registers the auth, query and feed command groups.
func NewRoot(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "lulu",
		Short: "Retail dashboard client commands",
	}
	root.AddCommand(
		newLoginCommand(deps),
		newLogoutCommand(deps),
		newKPIsCommand(deps),
		newSalesCommand(deps),
		newAlertsCommand(deps),
		newInventoryCommand(deps),
		newPromotionsCommand(deps),
		newHealthCommand(deps),
		newFeedCommand(deps),
	)
	return root
}
