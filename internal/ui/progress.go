package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ImportProgress renders a progress bar while result records are persisted.
// It satisfies the coordinator's Progress interface.
type ImportProgress struct {
	bar *progressbar.ProgressBar
}

// NewImportProgress creates an unstarted progress reporter.
func NewImportProgress() *ImportProgress {
	return &ImportProgress{}
}

// Start creates the bar sized to the number of result records.
func (p *ImportProgress) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(
			color.CyanString("Importing results: ")+
				color.GreenString("[imported: 0")+
				" | "+
				color.YellowString("skipped: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Step updates the bar with the imported and skipped counts so far.
func (p *ImportProgress) Step(imported, skipped int) {
	if p.bar == nil {
		return
	}
	p.bar.Set(imported + skipped)
	p.bar.Describe(
		color.CyanString("Importing results: ") +
			color.GreenString("[imported: %d", imported) +
			" | " +
			color.YellowString("skipped: %d]", skipped),
	)
}

// Finish completes the bar.
func (p *ImportProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
