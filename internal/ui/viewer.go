package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tfa/internal/config"
	"tfa/internal/domain"
)

// FailureViewer displays captured failure output in an interactive TUI
type FailureViewer struct {
	cfg *config.Config
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(cfg *config.Config) *FailureViewer {
	return &FailureViewer{cfg: cfg}
}

// View displays the last run's failing tests with each job's captured
// output. Navigation with arrow keys, q or Esc to quit.
func (v *FailureViewer) View(result *domain.AnalysisResult) error {
	if len(result.Failures) == 0 {
		color.Green("✓ No test failures recorded for %s", result.Meta.BuildURL)
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	list.SetBorder(true).SetTitle(fmt.Sprintf(" Failures (%d) ", len(result.Failures)))

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" Captured output ")

	renderDetails := func(test string) {
		captures := result.Captures[test]
		if len(captures) == 0 {
			details.SetText("[gray]no captured output for this test[white]")
			return
		}
		var b strings.Builder
		for _, capture := range captures {
			fmt.Fprintf(&b, "[cyan]── job %d ──[white]\n", capture.JobID)
			b.WriteString(tview.Escape(strings.Join(capture.Lines, "\n")))
			b.WriteString("\n\n")
		}
		details.SetText(b.String())
		details.ScrollToBeginning()
	}

	for i, entry := range result.Failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s [red](%dx)[white]", i+1, entry.Test, entry.Count), "", 0, nil)
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(result.Failures) {
			renderDetails(result.Failures[index].Test)
		}
	})
	renderDetails(result.Failures[0].Test)

	header := tview.NewTextView().
		SetDynamicColors(true).
		SetText(fmt.Sprintf("[cyan]%s[white]  jobs: %d  failing: %d  (%s)",
			result.Meta.BuildURL, result.Meta.TotalJobs, result.Meta.FailingJobs, result.Meta.Timestamp))

	body := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)
	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(body, 0, 1, true)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}
