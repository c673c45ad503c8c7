// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"io"
	"strings"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/pdfmeta"

	"github.com/fatih/color"
)

// Layout of the comparison table
const (
	RuleWidth     = 128
	StatusWidth   = 8
	PropertyWidth = 20
	ValueWidth    = 45
	ValueLimit    = 43
)

const (
	markChanged   = "🔴"
	markUnchanged = "🟢"
)

// Printer writes per-file progress and the final summary to the console
type Printer struct {
	out    io.Writer
	errOut io.Writer
	colors map[string]*color.Color
}

// NewPrinter creates a Printer writing to out, with warnings going to errOut.
// With noColor set no escape sequences are written.
func NewPrinter(out, errOut io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:    out,
		errOut: errOut,
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
	for _, c := range p.colors {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// Processing announces the file about to be processed
func (p *Printer) Processing(path string) {
	fmt.Fprintf(p.out, "Processing %s\n", p.colors["cyan"].Sprint(path))
}

// Available lists every Info dictionary key found in the file
func (p *Printer) Available(path string, snapshot pdfmeta.Snapshot, pages int, version string) {
	fmt.Fprintf(p.out, "Available metadata for %s (%d pages, PDF %s):\n", path, pages, version)
	if len(snapshot) == 0 {
		fmt.Fprintln(p.out, "  (none)")
		return
	}
	for _, key := range snapshot.Keys() {
		fmt.Fprintf(p.out, "  %s: %s\n", p.colors["white"].Sprint(key), oneLine(snapshot[key]))
	}
}

// NotRecognized reports a file whose name does not match the template
func (p *Printer) NotRecognized(path string) {
	fmt.Fprintf(p.out, "%s\n\n", p.colors["yellow"].Sprintf("No update needed for %s (filename format not recognized)", path))
}

// Comparison prints the before/after table over the union of keys
func (p *Printer) Comparison(before, after pdfmeta.Snapshot) {
	fmt.Fprint(p.out, FormatComparison(before, after, p.colors["red"], p.colors["green"]))
}

// Updated reports a saved file
func (p *Printer) Updated(path string) {
	fmt.Fprintf(p.out, "%s\n\n", p.colors["green"].Sprintf("Updated metadata for %s", path))
}

// Unchanged reports a file whose metadata already matched
func (p *Printer) Unchanged(path string) {
	fmt.Fprintf(p.out, "Metadata already up to date for %s\n\n", path)
}

// Skipped reports a file with pending changes in dry-run mode
func (p *Printer) Skipped(path string) {
	fmt.Fprintf(p.out, "%s\n\n", p.colors["yellow"].Sprintf("Dry run: changes for %s not saved", path))
}

// Failed reports a file that could not be processed
func (p *Printer) Failed(path string, err error) {
	fmt.Fprintf(p.out, "%s\n\n", p.colors["red"].Sprintf("Error processing %s: %v", path, err))
}

// NoFiles reports an empty directory
func (p *Printer) NoFiles() {
	fmt.Fprintln(p.out, "No PDF files found in the directory.")
}

// Warning writes a warning to the error stream
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.errOut, "%s %s\n", p.colors["yellow"].Sprint("Warning:"), fmt.Sprintf(format, args...))
}

// Summary prints the final counts
func (p *Printer) Summary(stats *batch.Stats) {
	fmt.Fprintln(p.out, SummaryLine(stats))
}

// SummaryLine formats the final counts of a run
func SummaryLine(stats *batch.Stats) string {
	if stats == nil {
		stats = &batch.Stats{}
	}
	line := fmt.Sprintf("Processed %d file(s): %d updated, %d unchanged, %d not recognized, %d failed",
		stats.Total, stats.Updated, stats.Unchanged, stats.Unrecognized, stats.Failed)
	if stats.Skipped > 0 {
		line += fmt.Sprintf(", %d skipped (dry run)", stats.Skipped)
	}
	return line
}

// FormatComparison renders the comparison table. changed and unchanged color
// the status marker and may be nil.
func FormatComparison(before, after pdfmeta.Snapshot, changed, unchanged *color.Color) string {
	var builder strings.Builder
	rule := strings.Repeat("─", RuleWidth)

	builder.WriteString(rule + "\n")
	fmt.Fprintf(&builder, "%-*s %-*s %-*s %-*s\n",
		StatusWidth, "Status", PropertyWidth, "Property", ValueWidth, "Current Value", ValueWidth, "Updated Value")
	builder.WriteString(rule + "\n")

	for _, key := range before.UnionKeys(after) {
		oldVal := truncate(oneLine(before[key]), ValueLimit)
		newVal := truncate(oneLine(after[key]), ValueLimit)

		mark, c := markUnchanged, unchanged
		if oldVal != newVal {
			mark, c = markChanged, changed
		}
		status := fmt.Sprintf("%-*s", StatusWidth, mark)
		if c != nil {
			status = c.Sprint(status)
		}

		fmt.Fprintf(&builder, "%s %-*s %-*s %-*s\n",
			status, PropertyWidth, key, ValueWidth, oldVal, ValueWidth, newVal)
	}

	builder.WriteString(rule + "\n")
	return builder.String()
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// truncate returns the first n runes of s
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
