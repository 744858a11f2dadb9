package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devhive-app/devhive/internal/client/guard"
)

// NewFeedCmd creates the feed command, the protected landing view
func NewFeedCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Open your feed (requires sign-in)",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "DevHive feed (signed in as %s)\n", snap.User.Name)
			fmt.Fprintln(out, "Your feed is empty. Follow other developers to see their posts here.")
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Server URL (defaults to the configured server)")

	return cmd
}
