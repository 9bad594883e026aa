// Package cli provides the command-line interface for worktally.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"worktally/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "worktally",
		Short: "Compute per-user work time from Start/Stop session logs",
		Long: `worktally reads delimited session logs and computes total work time per user.

It matches Start and Stop records by session id and reports:
  - Accumulated work time per login (HH:MM:SS)
  - Stops without a matching start
  - Starts never closed
  - Session ids closed by a different user
  - Stop-before-start pairs

Input format (fields may be quoted or bare):

  "login";"action";"YYYY-MM-DD HH:MM:SS";"session_id"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewTUICommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
