package ui

import (
	"fmt"

	"github.com/fatih/color"
	"tmi/internal/domain"
)

// Formatter formats and displays command output
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintSummaries displays one table row per imported file.
func (f *Formatter) PrintSummaries(summaries []domain.ImportSummary) {
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                        Import Summary                         ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	for _, s := range summaries {
		if s.Success {
			color.Green("✓ %s", s.Filename)
		} else {
			color.Red("✗ %s", s.Filename)
		}

		fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
		f.row("Run ID", fmt.Sprintf("%d", s.RunID), color.New(color.FgWhite))
		fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		f.row("Imported Results", fmt.Sprintf("%d", s.Imported), color.New(color.FgGreen))
		fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		skippedColor := color.New(color.FgGreen)
		if len(s.Skipped) > 0 {
			skippedColor = color.New(color.FgYellow)
		}
		f.row("Skipped Records", fmt.Sprintf("%d", len(s.Skipped)), skippedColor)
		fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")
		fmt.Println(s.Message)
		fmt.Println()
	}
}

// PrintRuns displays recent runs with their result counts.
func (f *Formatter) PrintRuns(runs []domain.RunListing) {
	if len(runs) == 0 {
		color.Yellow("No test runs found")
		return
	}

	fmt.Printf("%-6s %-40s %-12s %-12s %s\n", "ID", "NAME", "STATUS", "DATE", "RESULTS")
	for _, r := range runs {
		name := r.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Printf("%-6d %-40s %-12s %-12s %d\n", r.ID, name, r.Status, r.RunDate, r.Results)
	}
}

func (f *Formatter) row(label, value string, c *color.Color) {
	fmt.Printf("│ %-31s │ ", label)
	c.Printf("%-27s", value)
	fmt.Println(" │")
}
