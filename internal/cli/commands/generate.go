package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"worktally/pkg/generator"
)

// GenerateOptions holds command-line options for the generate command.
type GenerateOptions struct {
	Users     int
	Sessions  int
	Seed      uint64
	Anomalies bool
	Out       string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic session log",
		Long: `Generate a synthetic Start/Stop session log for testing and demos.

Logins are fake usernames, session ids are UUIDs, sessions are sequential
in time. With --anomalies, roughly every fifth session is broken: a start
left open, a stop with no start, or a stop issued by the wrong user.

Example:
  worktally generate --users 5 --sessions 50 --seed 1 -O sessions.log
  worktally generate --anomalies | worktally report /dev/stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", 5, "Number of distinct logins")
	cmd.Flags().IntVar(&opts.Sessions, "sessions", 20, "Number of sessions to emit")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Random seed (0 = random)")
	cmd.Flags().BoolVar(&opts.Anomalies, "anomalies", false, "Inject session anomalies")
	cmd.Flags().StringVarP(&opts.Out, "out", "O", "", "Output file (default stdout)")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	gen, err := generator.New(generator.Options{
		Users:     opts.Users,
		Sessions:  opts.Sessions,
		Seed:      opts.Seed,
		Anomalies: opts.Anomalies,
	})
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}

	w := cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out) // #nosec G304 -- user-provided output path is expected
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := gen.Write(w); err != nil {
		return fmt.Errorf("writing sessions: %w", err)
	}

	if opts.Out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d session(s) for %d login(s) to %s\n",
			opts.Sessions, opts.Users, opts.Out)
	}

	return nil
}
