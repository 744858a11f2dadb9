package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var name, email, password, server string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a DevHive account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, name, email, password, server)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (or set DEVHIVE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set DEVHIVE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&server, "server", "", "Server URL (defaults to the configured server)")

	return cmd
}

func runRegister(cmd *cobra.Command, name, email, password, server string) error {
	if email == "" {
		email = os.Getenv("DEVHIVE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("DEVHIVE_PASSWORD")
	}

	if name == "" {
		return fmt.Errorf("name is required (use --name flag)")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email flag or DEVHIVE_EMAIL env var)")
	}

	if password == "" {
		p, err := promptPassword("Password (8 or more characters): ")
		if err != nil {
			return err
		}
		password = p
	}

	app, err := newApp(server)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	app.flow.ResolveSession(ctx)

	if err := app.flow.Register(ctx, name, email, password); err != nil {
		app.flushAlerts(cmd.ErrOrStderr())
		return fmt.Errorf("registration failed")
	}

	user := app.session.Snapshot().User
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Welcome to DevHive, %s!\n", user.Name)
	return nil
}
