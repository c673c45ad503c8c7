// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"time"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/formatters"
)

// Report represents the top-level structure for JSON/YAML output
type Report struct {
	Run     RunInfo      `json:"run" yaml:"run"`
	Summary Summary      `json:"summary" yaml:"summary"`
	Results []FileResult `json:"results" yaml:"results"`
}

// RunInfo describes the run
type RunInfo struct {
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Directory  string `json:"directory" yaml:"directory"`
	Template   string `json:"template" yaml:"template"`
	DryRun     bool   `json:"dry_run" yaml:"dry_run"`
	StartedAt  string `json:"started_at" yaml:"started_at"`
	DurationMs int64  `json:"duration_ms" yaml:"duration_ms"`
}

// Summary holds the per-status counts
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	Updated      int `json:"updated" yaml:"updated"`
	Unchanged    int `json:"unchanged" yaml:"unchanged"`
	Unrecognized int `json:"unrecognized" yaml:"unrecognized"`
	Failed       int `json:"failed" yaml:"failed"`
	Skipped      int `json:"skipped" yaml:"skipped"`
}

// FileResult represents a single processed file in JSON/YAML format
type FileResult struct {
	Path       string            `json:"path" yaml:"path"`
	Status     string            `json:"status" yaml:"status"`
	Pages      int               `json:"pages,omitempty" yaml:"pages,omitempty"`
	Version    string            `json:"pdf_version,omitempty" yaml:"pdf_version,omitempty"`
	Fields     map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Changes    []Change          `json:"changes,omitempty" yaml:"changes,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs int64             `json:"duration_ms" yaml:"duration_ms"`
}

// Change is one Info dictionary key whose value differs
type Change struct {
	Key    string `json:"key" yaml:"key"`
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// ConvertStats converts run statistics to the JSON/YAML report structure
func ConvertStats(stats *batch.Stats, options formatters.FormatterOptions) Report {
	report := Report{
		Run: RunInfo{
			Version:   options.Version,
			Directory: options.Directory,
			Template:  options.Template,
			DryRun:    options.DryRun,
		},
		Results: []FileResult{},
	}
	if stats == nil {
		return report
	}

	report.Run.StartedAt = stats.StartedAt.UTC().Format(time.RFC3339)
	report.Run.DurationMs = stats.Duration.Milliseconds()
	report.Summary = Summary{
		Total:        stats.Total,
		Updated:      stats.Updated,
		Unchanged:    stats.Unchanged,
		Unrecognized: stats.Unrecognized,
		Failed:       stats.Failed,
		Skipped:      stats.Skipped,
	}

	for _, r := range stats.Results {
		fr := FileResult{
			Path:       r.Path,
			Status:     string(r.Status),
			Pages:      r.Pages,
			Version:    r.Version,
			Error:      r.Error(),
			DurationMs: r.Duration.Milliseconds(),
		}
		if len(r.Fields) > 0 {
			fr.Fields = make(map[string]string, len(r.Fields))
			for k, v := range r.Fields {
				fr.Fields[k] = v
			}
		}
		for _, key := range r.Changed {
			fr.Changes = append(fr.Changes, Change{
				Key:    key,
				Before: r.Before[key],
				After:  r.After[key],
			})
		}
		report.Results = append(report.Results, fr)
	}
	return report
}

// StatusLabel returns the human readable label of a status
func StatusLabel(status batch.Status) string {
	switch status {
	case batch.StatusUnrecognized:
		return "not recognized"
	case batch.StatusSkipped:
		return "skipped (dry run)"
	default:
		return string(status)
	}
}
