package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/arcade/internal/auth/app"
)

// NewUserCmd groups the account administration subcommands. They open the
// same database as the server, so they can run alongside it.
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage player accounts",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserSetAuthoritiesCmd())
	cmd.AddCommand(newUserEnrollTOTPCmd())
	cmd.AddCommand(newUserConfirmTOTPCmd())
	cmd.AddCommand(newUserDisableTOTPCmd())

	return cmd
}

// withApp opens the application for a one-off admin command. Logs go to
// stderr so stdout stays parseable.
func withApp(cmd *cobra.Command, fn func(*app.Application) error) error {
	application, err := app.New(app.LoadConfig(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	return fn(application)
}

func newUserCreateCmd() *cobra.Command {
	var (
		password    string
		authorities []string
	)

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account",
		Long: `Create an account with a password and its authorities. Exactly one
authority must be a ROLE_ marker, the rest are scopes.`,
		Example: `  auth user create alice --password hunter22 --authority ROLE_PLAYER --authority games:read`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				u, err := a.Users().CreateUser(cmd.Context(), args[0], password, authorities)
				if err != nil {
					return fmt.Errorf("create user: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", u.Username, u.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringSliceVar(&authorities, "authority", nil, "role or scope, repeatable")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("authority")

	return cmd
}

func newUserSetAuthoritiesCmd() *cobra.Command {
	var authorities []string

	cmd := &cobra.Command{
		Use:   "set-authorities <username>",
		Short: "Replace an account's role and scopes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				if err := a.Users().SetAuthorities(cmd.Context(), args[0], authorities); err != nil {
					return fmt.Errorf("set authorities: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated authorities for %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&authorities, "authority", nil, "role or scope, repeatable")
	_ = cmd.MarkFlagRequired("authority")

	return cmd
}

func newUserEnrollTOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll-totp <username>",
		Short: "Start TOTP enrolment",
		Long: `Generate a TOTP secret for the account. The second factor is only
enforced once confirm-totp succeeds with a code from the authenticator app.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				e, err := a.MFA().EnrollTOTP(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("enroll totp: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "secret: %s\n", e.Secret)
				fmt.Fprintf(cmd.OutOrStdout(), "url: %s\n", e.URL)
				return nil
			})
		},
	}
}

func newUserConfirmTOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm-totp <username> <code>",
		Short: "Enable TOTP with a code from the authenticator app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				if err := a.MFA().ConfirmTOTP(cmd.Context(), args[0], args[1]); err != nil {
					return fmt.Errorf("confirm totp: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "second factor enabled for %s\n", args[0])
				return nil
			})
		},
	}
}

func newUserDisableTOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable-totp <username>",
		Short: "Remove an account's second factor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.Application) error {
				if err := a.MFA().DisableTOTP(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("disable totp: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "second factor disabled for %s\n", args[0])
				return nil
			})
		},
	}
}
