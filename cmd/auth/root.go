package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the auth service CLI. All settings
// come from the environment, see app.LoadConfig.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Arcade authentication service",
		Long: `Exchanges player credentials for signed access tokens.

Players log in at POST /token with a username and password. Accounts with a
TOTP second factor finish at POST /token/2fa.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewUserCmd())

	return cmd
}
