package cli

import "testing"

func TestNewRootCommand(t *testing.T) {
	rootCmd := NewRootCommand()

	if rootCmd.Use != "worktally" {
		t.Errorf("Unexpected Use: %s", rootCmd.Use)
	}

	want := []string{"report", "inspect", "generate", "history", "tui", "validate", "version"}
	for _, name := range want {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing subcommand: %s", name)
		}
	}

	if !rootCmd.SilenceUsage || !rootCmd.SilenceErrors {
		t.Error("root command should silence cobra's usage and error output")
	}
}
