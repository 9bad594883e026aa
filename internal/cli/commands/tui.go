package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"worktally/internal/tui"
	"worktally/pkg/config"
)

// TUIOptions holds command-line options for the tui command.
type TUIOptions struct {
	ConfigPath string
}

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	opts := &TUIOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive work time calculator",
		Long: `Open an interactive terminal interface for computing work time.

Enter a log file path and an optional login filter, then run the
computation without leaving the terminal. The pass runs in the
background; cancelling discards its result once it completes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")

	return cmd
}

func runTUI(cmd *cobra.Command, opts *TUIOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := tui.Run(cfg); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
