package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/embedsync/internal/docsync"
)

// progressReporter implements docsync.ProgressReporter with a progress
// bar for multi-document runs.
type progressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newProgressReporter(quiet bool) *progressReporter {
	return &progressReporter{quiet: quiet}
}

func (p *progressReporter) OnRunStart(totalDocs int) {
	if p.quiet || totalDocs < 2 {
		return
	}
	p.bar = progressbar.NewOptions(totalDocs,
		progressbar.OptionSetDescription("Syncing documents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressReporter) OnDocument(path string) {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *progressReporter) OnRunComplete() {
	if p.bar != nil {
		p.bar.Finish()
		fmt.Println()
	}
}

// printReports writes one line per directive failure to stderr with
// enough context to locate and fix the marker.
func printReports(summary *docsync.RunSummary) {
	for _, r := range summary.Reports {
		fmt.Fprintf(os.Stderr, "%s:%d: %s (%s)\n", r.Document, r.Line, r.Reason, r.Ref)
	}
}

// printSummary writes the aggregated run summary.
func printSummary(summary *docsync.RunSummary, check bool) {
	updatedWord := "updated"
	if check {
		updatedWord = "stale"
	}

	fmt.Printf("%d directive(s) across %d document(s): %s, %s\n",
		summary.Directives,
		summary.Touched,
		color.YellowString("%d %s", summary.Updated, updatedWord),
		color.GreenString("%d current", summary.Touched-summary.Updated),
	)
	if len(summary.Reports) > 0 {
		color.Red("%d directive(s) failed to resolve", len(summary.Reports))
	}
}
