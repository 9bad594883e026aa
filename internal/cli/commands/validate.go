package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"worktally/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a worktally configuration file without running a report.

Checks:
  - YAML syntax
  - Delimiter and timestamp layout
  - Start/stop action names`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Delimiter:        %q\n", cfg.LogFormat.Delimiter)
	fmt.Fprintf(w, "  Timestamp layout: %s\n", cfg.LogFormat.TimestampLayout)
	fmt.Fprintf(w, "  Actions:          %s / %s\n", cfg.LogFormat.StartAction, cfg.LogFormat.StopAction)
	fmt.Fprintf(w, "  History database: %s\n", cfg.History.Path)

	return nil
}
