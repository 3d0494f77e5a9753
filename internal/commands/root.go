// Package commands wires the clubledger CLI: the HTTP server, migrations and one-shot batch jobs.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clubledger",
		Short: "Club shared-fund ledger and bank reconciliation",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSyncCommand(),
		newExpireCommand(),
		newSettleCommand(),
		newStatementCommand(),
	)

	return rootCmd
}
