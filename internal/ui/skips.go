package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"tmi/internal/domain"
	"tmi/internal/storage"
)

// SkipsViewer displays the skipped records of the last import in an
// interactive TUI.
type SkipsViewer struct {
	storage storage.SummaryStorage
}

// NewSkipsViewer creates a new SkipsViewer
func NewSkipsViewer(st storage.SummaryStorage) *SkipsViewer {
	return &SkipsViewer{storage: st}
}

// skipEntry is one flattened list row: a skipped record plus where it came
// from.
type skipEntry struct {
	summary int // index into summaries
	record  int // index into that summary's Skipped
}

// View displays skipped records across all summaries of the last import.
// 'r' toggles the reviewed mark (persisted back to the summary file), q or
// Esc quits.
func (sv *SkipsViewer) View(summaries []domain.ImportSummary) error {
	var entries []skipEntry
	for si, s := range summaries {
		for ri := range s.Skipped {
			entries = append(entries, skipEntry{summary: si, record: ri})
		}
	}
	if len(entries) == 0 {
		color.Green("✓ No skipped records in the last import!")
		return nil
	}

	record := func(e skipEntry) *domain.SkippedRecord {
		return &summaries[e.summary].Skipped[e.record]
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	itemText := func(i int) string {
		e := entries[i]
		r := record(e)
		label := fmt.Sprintf("%s #%d (%s)", r.Kind, r.Index+1, summaries[e.summary].Filename)
		if r.Reviewed {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", i+1, label)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", i+1, label)
	}
	for i := range entries {
		list.AddItem(itemText(i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" Record ")

	showDetails := func(i int) {
		e := entries[i]
		s := summaries[e.summary]
		r := record(e)
		details.SetText(fmt.Sprintf(
			"[yellow]File:[white] %s\n[yellow]Run ID:[white] %d\n[yellow]Kind:[white] %s\n[yellow]Record index:[white] %d\n\n[yellow]Reason:[white]\n%s",
			s.Filename, s.RunID, r.Kind, r.Index, r.Reason))
	}
	showDetails(0)
	list.SetChangedFunc(func(i int, _ string, _ string, _ rune) {
		if i >= 0 && i < len(entries) {
			showDetails(i)
		}
	})

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]j/k[white] move  [yellow]r[white] toggle reviewed  [yellow]q[white] quit")

	flex := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(flex, 0, 1, true).
		AddItem(help, 1, 0, false)

	var saveErr error
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			app.Stop()
			return nil
		case 'j':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
		case 'k':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
		case 'r':
			i := list.GetCurrentItem()
			if i >= 0 && i < len(entries) {
				r := record(entries[i])
				r.Reviewed = !r.Reviewed
				list.SetItemText(i, itemText(i), "")
				if err := sv.storage.Save(summaries); err != nil {
					saveErr = err
				}
			}
			return nil
		}
		if event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	if err := app.SetRoot(root, true).Run(); err != nil {
		return fmt.Errorf("skips viewer: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("save reviewed state: %w", saveErr)
	}
	return nil
}
