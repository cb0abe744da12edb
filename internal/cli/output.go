package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tacogips/mkapp/internal/pipeline"
)

// Colors
var (
	colorSuccess = lipgloss.Color("10")
	colorWarning = lipgloss.Color("11")
	colorError   = lipgloss.Color("9")
	colorInfo    = lipgloss.Color("12")
	colorMuted   = lipgloss.Color("244")
	colorBorder  = lipgloss.Color("238")
)

// styled renders s with style unless colors are disabled.
func styled(style lipgloss.Style, s string) string {
	if globalNoColor {
		return s
	}
	return style.Render(s)
}

// printInfo prints an informational message
func printInfo(w io.Writer, msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(w, msg)
}

// printSuccess prints a success message
func printSuccess(w io.Writer, msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(w, "%s %s\n", styled(lipgloss.NewStyle().Foreground(colorSuccess), "✓"), msg)
}

// printWarning prints a warning message
func printWarning(w io.Writer, msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(w, "%s %s\n", styled(lipgloss.NewStyle().Foreground(colorWarning), "⚠"), msg)
}

// printErrorMsg prints an error message. Never suppressed by --quiet.
func printErrorMsg(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", styled(lipgloss.NewStyle().Foreground(colorError), "✗"), msg)
}

// printProgress prints a progress indicator
func printProgress(w io.Writer, msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(w, "%s %s\n", styled(lipgloss.NewStyle().Foreground(colorInfo), "→"), msg)
}

// summaryBox frames the confirmation summary.
func summaryBox(text string) string {
	if globalNoColor {
		return "\n" + text + "\n"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(text)
}

var stepLabels = map[pipeline.StepName]string{
	pipeline.StepPrepareOutputDirectory: "Preparing output directory",
	pipeline.StepFetchTemplate:          "Downloading template",
	pipeline.StepRunInitializer:         "Running template initializer",
	pipeline.StepInitAndCommit:          "Creating initial commit",
	pipeline.StepCreateRemote:           "Creating GitHub repository",
	pipeline.StepAddRemoteAndPush:       "Pushing to GitHub",
}

func stepLabel(name pipeline.StepName) string {
	if l, ok := stepLabels[name]; ok {
		return l
	}
	return string(name)
}

// progressObserver prints pipeline progress.
type progressObserver struct {
	w io.Writer
}

func (o progressObserver) StepStarted(name pipeline.StepName) {
	printProgress(o.w, stepLabel(name)+"...")
}

func (o progressObserver) StepFinished(r pipeline.StepResult) {
	switch r.Outcome {
	case pipeline.OutcomeSucceeded:
		printSuccess(o.w, fmt.Sprintf("%s %s", stepLabel(r.Name),
			styled(lipgloss.NewStyle().Foreground(colorMuted), "("+r.Duration.Round(time.Millisecond).String()+")")))
	case pipeline.OutcomeSkipped:
		printInfo(o.w, styled(lipgloss.NewStyle().Foreground(colorMuted), "- "+stepLabel(r.Name)+" (skipped)"))
	case pipeline.OutcomeFailed:
		printErrorMsg(o.w, stepLabel(r.Name)+" failed")
	}
}

// printReport prints the final summary of a successful run.
func printReport(w io.Writer, report *pipeline.Report) {
	if globalQuiet {
		return
	}
	for _, warn := range report.Warnings {
		printWarning(w, warn)
	}

	fmt.Fprintln(w)
	printSuccess(w, styled(lipgloss.NewStyle().Bold(true), "Done"))
	if report.Repository != nil {
		fmt.Fprintf(w, "  Repo:  %s\n", report.Repository.HTMLURL)
	} else {
		fmt.Fprintf(w, "  Repo:  %s\n", "(local only)")
	}
	fmt.Fprintf(w, "  Local: %s\n", report.OutputDirectory)
}

// printFailure prints warnings collected before a step failed.
func printFailure(w io.Writer, report *pipeline.Report) {
	if report == nil {
		return
	}
	for _, warn := range report.Warnings {
		printWarning(w, warn)
	}
	if report.Repository != nil {
		printInfo(w, "  Remote repository: "+report.Repository.HTMLURL)
	}
	var done []string
	for _, s := range report.Steps {
		if s.Outcome == pipeline.OutcomeSucceeded {
			done = append(done, string(s.Name))
		}
	}
	if len(done) > 0 {
		printInfo(w, "  Completed steps: "+strings.Join(done, ", "))
	}
	printInfo(w, "  Local: "+report.OutputDirectory)
}
