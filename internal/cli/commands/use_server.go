package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devhive-app/devhive/internal/client/userconfig"
)

// NewUseServerCmd creates the use-server command
func NewUseServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-server <url>",
		Short: "Set the DevHive server this client talks to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := userconfig.SetServerURL(args[0]); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Using server %s\n", args[0])
			return nil
		},
	}
}
