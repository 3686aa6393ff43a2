package main

import (
	"fmt"
	"os"

	"tmi/internal/cli"
	"tmi/internal/cli/commands"
	"tmi/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "tmi",
		Short:   "Test-management result importer",
		Long:    `Import externally produced test result files (JSON dialects, malformed concatenated JSON, Excel sheets) into the test-management database, normalizing them into test runs with linked cases and suites.`,
		Version: version,
	}

	// Create initial config with defaults, overlaid from .env/environment
	cfg := config.New()
	cfg.LoadEnv()

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
