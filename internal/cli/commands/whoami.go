package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devhive-app/devhive/internal/client/guard"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(server)
			if err != nil {
				return err
			}

			snap := app.flow.ResolveSession(cmd.Context())

			res := guard.Decide(snap)
			if res.Decision != guard.Allow {
				app.flushAlerts(cmd.ErrOrStderr())
				return fmt.Errorf("not signed in. Run 'devhive login' first")
			}

			user := snap.User
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			if user.Avatar != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Avatar: %s\n", user.Avatar)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Server URL (defaults to the configured server)")

	return cmd
}
