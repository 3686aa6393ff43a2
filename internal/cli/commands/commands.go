package commands

import (
	"tmi/internal/cli"
	"tmi/internal/config"
	"tmi/internal/migration"
	"tmi/internal/storage"
	"tmi/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Import  *ImportCommand
	Runs    *RunsCommand
	Skips   *SkipsCommand
	Migrate *MigrateCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	summaryStorage := storage.NewJSONSummaryStorage(cfg)
	formatter := ui.NewFormatter()
	skipsViewer := ui.NewSkipsViewer(summaryStorage)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager)

	return &Commands{
		Import:  NewImportCommand(cfg, summaryStorage, formatter),
		Runs:    NewRunsCommand(cfg, formatter),
		Skips:   NewSkipsCommand(summaryStorage, skipsViewer),
		Migrate: NewMigrateCommand(cfg, migrator),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Import command
	importCmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import test result files",
		Long:  "Import test results from JSON or Excel files. Each file becomes one test run.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Import.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	importCmd.Flags().Int64VarP(&flags.OperatorID, "operator", "o", 0, "Operator ID to attribute the run to (defaults to the configured actor)")
	importCmd.Flags().StringVarP(&flags.RunName, "run-name", "n", "", "Name for the created test run")
	importCmd.Flags().Int64VarP(&flags.DUTID, "dut", "d", 0, "Device under test ID to reference from the run")
	rootCmd.AddCommand(importCmd)

	// Runs command
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent test runs",
		Long:  "List the most recent test runs with their result counts",
		RunE:  c.Runs.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runsCmd.Flags().IntVarP(&flags.Limit, "limit", "l", config.DefaultRunLimit, "Number of runs to list")
	rootCmd.AddCommand(runsCmd)

	// Skips command
	skipsCmd := &cobra.Command{
		Use:   "skips",
		Short: "View skipped records interactively",
		Long:  "Display the records skipped during the last import in an interactive viewer",
		RunE:  c.Skips.Execute,
	}
	rootCmd.AddCommand(skipsCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Long:  "Create the database if needed, apply the table schema and seed the default operator",
		RunE:  c.Migrate.Execute,
	}
	rootCmd.AddCommand(migrateCmd)
}
