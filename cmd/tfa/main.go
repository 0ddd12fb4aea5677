package main

import (
	"fmt"
	"os"

	"tfa/internal/cli"
	"tfa/internal/cli/commands"
	"tfa/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "tfa <build-url>",
		Short:   "Travis CI failure analyzer",
		Long:    `Fetch the logs of a Travis CI build's failed jobs, count which tests failed across the job matrix, and optionally diff divergent failure output between jobs.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
