// Package progress reports import progress on the terminal or, in CI,
// as plain log lines.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress while one dataset is imported.
type Reporter interface {
	Start(label string, total int)
	Update(done int)
	Finish()
}

// NewReporter returns a CIReporter when the CI environment variable is set,
// otherwise a TerminalReporter. Both write to w.
func NewReporter(w io.Writer) Reporter {
	if w == nil {
		w = os.Stderr
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w, every: 100}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter draws a progress bar.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(label string, total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(done int) {
	if r.bar != nil {
		_ = r.bar.Set(done)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints a line every `every` records and on the last one.
type CIReporter struct {
	w     io.Writer
	every int
	label string
	total int
}

func (r *CIReporter) Start(label string, total int) {
	r.label, r.total = label, total
	fmt.Fprintf(r.w, "%s: importing %d records\n", label, total)
}

func (r *CIReporter) Update(done int) {
	if r.every > 0 && done%r.every != 0 && done != r.total {
		return
	}
	fmt.Fprintf(r.w, "%s: [%d/%d]\n", r.label, done, r.total)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.label)
}
