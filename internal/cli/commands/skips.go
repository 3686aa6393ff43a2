package commands

import (
	"fmt"

	"tmi/internal/storage"
	"tmi/internal/ui"

	"github.com/spf13/cobra"
)

// SkipsCommand handles the skips command
type SkipsCommand struct {
	summaries storage.SummaryStorage
	viewer    *ui.SkipsViewer
}

// NewSkipsCommand creates a new SkipsCommand
func NewSkipsCommand(summaries storage.SummaryStorage, viewer *ui.SkipsViewer) *SkipsCommand {
	return &SkipsCommand{summaries: summaries, viewer: viewer}
}

// Execute runs the command
func (sc *SkipsCommand) Execute(cmd *cobra.Command, args []string) error {
	summaries, err := sc.summaries.Load()
	if err != nil {
		return fmt.Errorf("no import summary found, run an import first: %w", err)
	}
	return sc.viewer.View(summaries)
}
