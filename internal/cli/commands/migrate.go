package commands

import (
	"tmi/internal/config"
	"tmi/internal/migration"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config   *config.Config
	migrator migration.Migrator
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config, migrator migration.Migrator) *MigrateCommand {
	return &MigrateCommand{config: cfg, migrator: migrator}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := mc.migrator.Run(); err != nil {
		return err
	}
	color.Green("✓ Database %s is ready", mc.config.DB.Name)
	return nil
}
