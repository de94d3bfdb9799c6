package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RunClawd/runclawd/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "runclawd",
	Short: "RunClawd - self-hosted gateway installer and operator",
	Long: `RunClawd installs and operates a self-hosted gateway stack:
it prepares the host, acquires the deployable tree, brings up the
container stack behind a Cloudflare tunnel, and extracts the
credentials needed to reach it.

It also manages the stack's persistent volume with one-shot backups,
scheduled retention-pruned backups, and restores.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Config{
			Level:      log.Level(logLevel),
			JSONOutput: logJSON,
		})
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"RunClawd version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(restoreCmd)
}
