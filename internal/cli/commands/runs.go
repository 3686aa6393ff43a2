package commands

import (
	"context"
	"fmt"

	"tmi/internal/config"
	"tmi/internal/storage"
	"tmi/internal/ui"

	"github.com/spf13/cobra"
)

// RunsCommand handles the runs command
type RunsCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewRunsCommand creates a new RunsCommand
func NewRunsCommand(cfg *config.Config, formatter *ui.Formatter) *RunsCommand {
	return &RunsCommand{config: cfg, formatter: formatter}
}

// Execute runs the command
func (rc *RunsCommand) Execute(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(rc.config)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	limit := rc.config.Flags.Limit
	if limit <= 0 {
		limit = config.DefaultRunLimit
	}

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	rc.formatter.PrintRuns(runs)
	return nil
}
