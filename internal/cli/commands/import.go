package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tmi/internal/config"
	"tmi/internal/domain"
	"tmi/internal/ingest"
	"tmi/internal/spreadsheet"
	"tmi/internal/storage"
	"tmi/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ImportCommand handles the import command
type ImportCommand struct {
	config    *config.Config
	summaries storage.SummaryStorage
	formatter *ui.Formatter
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(cfg *config.Config, summaries storage.SummaryStorage, formatter *ui.Formatter) *ImportCommand {
	return &ImportCommand{
		config:    cfg,
		summaries: summaries,
		formatter: formatter,
	}
}

// Execute runs the command
func (ic *ImportCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No files to import")
		return nil
	}

	store, err := storage.Open(ic.config)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	coordinator := ingest.NewCoordinator(store)
	coordinator.SetProgress(ui.NewImportProgress())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var dutID *int64
	if ic.config.Flags.DUTID > 0 {
		id := ic.config.Flags.DUTID
		dutID = &id
	}

	var results []domain.ImportSummary
	failed := 0
	for _, file := range files {
		opts := ingest.Options{
			Source:     filepath.Base(file),
			RunName:    ic.config.Flags.RunName,
			OperatorID: ic.config.Flags.OperatorID,
			ActorLogin: ic.config.OperatorLogin,
			DUTID:      dutID,
		}

		summary, err := ic.importFile(ctx, coordinator, file, opts)
		if err != nil {
			color.Red("✗ %s: %v", file, err)
			failed++
		}
		results = append(results, summary)
	}

	if err := ic.summaries.Save(results); err != nil {
		return fmt.Errorf("failed to save import summary: %w", err)
	}

	ic.formatter.PrintSummaries(results)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

// importFile routes one file by extension into the pipeline.
func (ic *ImportCommand) importFile(ctx context.Context, coordinator *ingest.Coordinator, file string, opts ingest.Options) (domain.ImportSummary, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		raw, err := os.ReadFile(file)
		if err != nil {
			return failedSummary(opts.Source, err), fmt.Errorf("read file: %w", err)
		}
		return coordinator.ImportJSON(ctx, raw, opts)
	case ".xlsx", ".xls":
		rows, err := spreadsheet.Read(file)
		if err != nil {
			err = fmt.Errorf("%w: %v", ingest.ErrUnreadableInput, err)
			return failedSummary(opts.Source, err), err
		}
		return coordinator.ImportRows(ctx, rows, opts)
	default:
		err := fmt.Errorf("%w: unsupported file type %q", ingest.ErrUnreadableInput, filepath.Ext(file))
		return failedSummary(opts.Source, err), err
	}
}

// expandArgs resolves glob patterns so `tmi import results/*.json` works
// even when the shell does not expand it.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// Not a pattern, or nothing matched: keep the literal path so
			// the read error names it.
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func failedSummary(source string, err error) domain.ImportSummary {
	return domain.ImportSummary{
		Filename: source,
		Success:  false,
		Message:  fmt.Sprintf("Error importing test results: %v", err),
	}
}
