package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devhive-app/devhive/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "devhive",
	Short: "DevHive - A social network for developers",
	Long: `DevHive CLI - Sign in to DevHive and browse your feed from the terminal.

Your session is kept in the OS keychain; run 'devhive login' once and
subsequent commands pick it up automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("devhive version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewFeedCmd())
	rootCmd.AddCommand(commands.NewUseServerCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
