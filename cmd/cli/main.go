// worktally - Work Time Calculator
//
// worktally computes per-user work time from delimited Start/Stop session
// logs and reports session anomalies.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"worktally/internal/cli"
)

func main() {
	// Optional local overrides; a missing .env is fine.
	_ = godotenv.Load()

	os.Exit(cli.Execute())
}
