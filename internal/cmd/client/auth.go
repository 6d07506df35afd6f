package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krish2105/lulu-intelligence-dashboard-sub001/internal/api"
)

// newLoginCommand constructs the `login` command.
func newLoginCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			resp, err := deps.API().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			store := api.NewFileTokenStore(deps.dataDir())
			if err := store.Save(resp.AccessToken, resp.RefreshToken); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

// newLogoutCommand constructs the `logout` command.
func newLogoutCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := api.NewFileTokenStore(deps.dataDir()).Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
}
