package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, server string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to DevHive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, email, password, server)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set DEVHIVE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set DEVHIVE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&server, "server", "", "Server URL (defaults to the configured server)")

	return cmd
}

func runLogin(cmd *cobra.Command, email, password, server string) error {
	// Environment fallbacks, useful for CI
	if email == "" {
		email = os.Getenv("DEVHIVE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("DEVHIVE_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or DEVHIVE_EMAIL env var)")
	}

	if password == "" {
		p, err := promptPassword("Password: ")
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

	if err := app.flow.Login(ctx, email, password); err != nil {
		app.flushAlerts(cmd.ErrOrStderr())
		return fmt.Errorf("login failed")
	}

	user := app.session.Snapshot().User
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

// promptPassword reads a password without echo when stdin is a terminal
func promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or DEVHIVE_PASSWORD env var)")
	}

	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()
	return string(bytePassword), nil
}
