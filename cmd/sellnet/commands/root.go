package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the sellnet command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sellnet",
		Short:         "Sellnet marketplace backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(),
		NewCreateAdminCommand(),
	)

	return rootCmd
}
