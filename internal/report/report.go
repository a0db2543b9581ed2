// Package report prints batch summaries and dry-run diffs.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"tagdoc/internal/model"
	"tagdoc/internal/tagger"
)

// Mode selects the wording of the summary.
type Mode uint8

const (
	ModeApply Mode = iota
	ModeCheck
)

var (
	modifiedColor = color.New(color.FgGreen, color.Bold)
	missingColor  = color.New(color.FgYellow, color.Bold)
	skippedColor  = color.New(color.FgYellow)
	failedColor   = color.New(color.FgRed, color.Bold)
	dimColor      = color.New(color.Faint)
)

// Printer writes human readable reports.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// New returns a Printer writing to w. Unchanged files are only listed when
// verbose is set.
func New(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

// Summary prints one line per file of interest followed by the totals.
func (p *Printer) Summary(sum *tagger.Summary, mode Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, res := range sum.Results {
		if err := p.writeResult(res, mode); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w, Totals(sum, mode))
	return err
}

// Result prints the line for a single result. It is safe for concurrent use.
func (p *Printer) Result(res tagger.Result, mode Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeResult(res, mode)
}

func (p *Printer) writeResult(res tagger.Result, mode Mode) error {
	line, ok := p.resultLine(res, mode)
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		return err
	}
	for _, w := range res.Warnings {
		if _, err := fmt.Fprintf(p.w, "    warning: %s\n", w); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) resultLine(res tagger.Result, mode Mode) (string, bool) {
	switch res.Status {
	case model.StatusModified:
		if mode == ModeCheck {
			return fmt.Sprintf("  %s %s (%s)", missingColor.Sprint("missing  "), res.Path, tagNames(res.Added)), true
		}
		return fmt.Sprintf("  %s %s (%s)", modifiedColor.Sprint("modified "), res.Path, tagNames(res.Added)), true
	case model.StatusSkipped:
		return fmt.Sprintf("  %s %s: %s", skippedColor.Sprint("skipped  "), res.Path, res.Reason), true
	case model.StatusFailed:
		return fmt.Sprintf("  %s %s: %s", failedColor.Sprint("failed   "), res.Path, res.Reason), true
	default:
		if !p.verbose {
			return "", false
		}
		return fmt.Sprintf("  %s %s", dimColor.Sprint("unchanged"), res.Path), true
	}
}

// Totals returns the closing line of a summary.
func Totals(sum *tagger.Summary, mode Mode) string {
	first := "modified"
	if mode == ModeCheck {
		first = "missing tags"
	}
	return fmt.Sprintf("%d %s: %d %s, %d unchanged, %d skipped, %d failed",
		len(sum.Results), plural(len(sum.Results), "file", "files"),
		sum.Count(model.StatusModified), first,
		sum.Count(model.StatusUnchanged),
		sum.Count(model.StatusSkipped),
		sum.Count(model.StatusFailed))
}

// Diffs prints a unified diff for every modified result that carries its
// original and updated text.
func (p *Printer) Diffs(sum *tagger.Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, res := range sum.Results {
		if res.Status != model.StatusModified || res.Original == res.Updated {
			continue
		}
		text, err := Diff(res)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(p.w, text); err != nil {
			return err
		}
	}
	return nil
}

// Diff returns the unified diff between res.Original and res.Updated.
func Diff(res tagger.Result) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(res.Original),
		B:        difflib.SplitLines(res.Updated),
		FromFile: "a/" + res.Path,
		ToFile:   "b/" + res.Path,
		Context:  3,
	})
}

func tagNames(tags []model.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = "+" + t.Marker()
	}
	return strings.Join(names, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
