// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ebook-meta/internal/config"
	"ebook-meta/internal/metadata"
	"ebook-meta/internal/observability"
	"ebook-meta/internal/pdfmeta"
	"ebook-meta/internal/template"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Status is the outcome of processing one file
type Status string

const (
	StatusUpdated      Status = "updated"
	StatusUnchanged    Status = "unchanged"
	StatusUnrecognized Status = "unrecognized"
	StatusFailed       Status = "failed"
	StatusSkipped      Status = "skipped" // changes found but not saved (dry run)
)

// Printer receives progress for each processed file
type Printer interface {
	Processing(path string)
	Available(path string, snapshot pdfmeta.Snapshot, pages int, version string)
	NotRecognized(path string)
	Comparison(before, after pdfmeta.Snapshot)
	Updated(path string)
	Unchanged(path string)
	Skipped(path string)
	Failed(path string, err error)
}

// Result is the outcome of processing one file
type Result struct {
	Path    string
	Status  Status
	Fields  template.FieldSet
	Before  pdfmeta.Snapshot
	After   pdfmeta.Snapshot
	Changed []string
	Pages   int
	Version string
	Err     error

	Duration time.Duration
}

// Error returns the failure message, or "" when the file did not fail
func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Stats aggregates the results of a run
type Stats struct {
	Total        int
	Updated      int
	Unchanged    int
	Unrecognized int
	Failed       int
	Skipped      int

	StartedAt time.Time
	Duration  time.Duration

	Results []Result
}

func (s *Stats) add(r Result) {
	s.Total++
	switch r.Status {
	case StatusUpdated:
		s.Updated++
	case StatusUnchanged:
		s.Unchanged++
	case StatusUnrecognized:
		s.Unrecognized++
	case StatusFailed:
		s.Failed++
	case StatusSkipped:
		s.Skipped++
	}
	s.Results = append(s.Results, r)
}

// Runner processes PDF files one after another
type Runner struct {
	Config   *config.Config
	Pattern  *template.Pattern
	Printer  Printer
	Observer *observability.DebugObserver

	// PDFConfig is passed to pdfmeta.Open; nil selects pdfmeta.NewConfiguration
	PDFConfig *model.Configuration
}

// NewRunner creates a Runner. observer may be nil.
func NewRunner(cfg *config.Config, pattern *template.Pattern, printer Printer, observer *observability.DebugObserver) *Runner {
	return &Runner{
		Config:    cfg,
		Pattern:   pattern,
		Printer:   printer,
		Observer:  observer,
		PDFConfig: pdfmeta.NewConfiguration(),
	}
}

var _ observability.Observable = (*Runner)(nil)

// GetComponentName returns the component identifier
func (r *Runner) GetComponentName() string {
	return "batch"
}

// Run processes files in order. A failure on one file never stops the run.
func (r *Runner) Run(files []string) *Stats {
	stats := &Stats{StartedAt: time.Now()}

	finish := r.Observer.StartStep(r.GetComponentName(), "run", fmt.Sprintf("%d files", len(files)))
	for _, path := range files {
		stats.add(r.ProcessFile(path))
	}
	stats.Duration = time.Since(stats.StartedAt)
	finish(stats.Failed == 0, fmt.Sprintf("updated=%d unchanged=%d unrecognized=%d failed=%d skipped=%d",
		stats.Updated, stats.Unchanged, stats.Unrecognized, stats.Failed, stats.Skipped))

	return stats
}

// ProcessFile reads the metadata of path, derives the update from its file
// name and saves the file when the metadata changed
func (r *Runner) ProcessFile(path string) (res Result) {
	res = Result{Path: path}

	done := r.Observer.Standard().StartTiming(r.GetComponentName(), "process", path)
	finish := r.Observer.StartStep(r.GetComponentName(), "process", path)
	defer func() {
		op := done(res.Err, map[string]interface{}{
			"status":  string(res.Status),
			"changed": len(res.Changed),
		})
		res.Duration = time.Duration(op.DurationMs) * time.Millisecond
		finish(res.Status != StatusFailed, string(res.Status))
	}()

	// A panic in one file must not end the run
	defer func() {
		if p := recover(); p != nil {
			res = r.fail(res, fmt.Errorf("panic while processing %s: %v", filepath.Base(path), p))
		}
	}()

	r.Printer.Processing(path)

	doc, err := pdfmeta.Open(path, r.PDFConfig)
	if err != nil {
		return r.fail(res, err)
	}
	defer doc.Close()

	before, err := doc.Snapshot()
	if err != nil {
		return r.fail(res, err)
	}
	res.Before = before
	res.Pages = doc.PageCount()
	res.Version = doc.Version()
	r.Observer.LogDetail("pdfmeta", fmt.Sprintf("%d info keys, %d pages, PDF %s", len(before), res.Pages, res.Version))

	if r.Config.LogAvailable {
		r.Printer.Available(path, before, res.Pages, res.Version)
	}

	stem := Stem(path)
	fields, ok := r.Pattern.Match(stem)
	if !ok {
		r.Observer.LogDetail("template", fmt.Sprintf("%q does not match %s", stem, r.Pattern))
		res.Status = StatusUnrecognized
		r.Printer.NotRecognized(path)
		return res
	}
	res.Fields = fields
	r.Observer.LogDetail("template", "matched "+describeFields(fields))

	update := metadata.Plan(fields, r.Config.OutputTemplates())
	if err := doc.Apply(update); err != nil {
		return r.fail(res, err)
	}

	after, err := doc.Snapshot()
	if err != nil {
		return r.fail(res, err)
	}
	res.After = after
	res.Changed = before.Changed(after)
	r.Observer.LogMetric("pdfmeta", "changed_keys", len(res.Changed))
	r.Printer.Comparison(before, after)

	switch {
	case before.Equal(after):
		res.Status = StatusUnchanged
		r.Printer.Unchanged(path)
	case r.Config.DryRun:
		res.Status = StatusSkipped
		r.Printer.Skipped(path)
	default:
		if err := doc.Save(); err != nil {
			return r.fail(res, err)
		}
		r.Observer.LogDetail("pdfmeta", "saved "+strings.Join(res.Changed, ", "))
		res.Status = StatusUpdated
		r.Printer.Updated(path)
	}
	return res
}

func (r *Runner) fail(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	r.Printer.Failed(res.Path, err)
	return res
}

func describeFields(fields template.FieldSet) string {
	parts := make([]string, 0, len(fields))
	for _, name := range fields.Names() {
		parts = append(parts, name+"="+fields.Value(name))
	}
	return strings.Join(parts, " ")
}
