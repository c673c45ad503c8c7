// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/formatters"
	"ebook-meta/internal/formatters/shared"
)

// Formatter implements the plain text run report
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable run report with one block per file"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(stats *batch.Stats, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Directory: %s\n", options.Directory)
	fmt.Fprintf(&builder, "Template:  %s\n", options.Template)
	if options.DryRun {
		builder.WriteString("Mode:      dry run\n")
	}
	builder.WriteString("\n")

	if stats != nil {
		for _, r := range stats.Results {
			f.appendResult(&builder, r)
		}
	}

	builder.WriteString(SummaryLine(stats) + "\n")
	return builder.String(), nil
}

func (f *Formatter) appendResult(builder *strings.Builder, r batch.Result) {
	fmt.Fprintf(builder, "[%s] %s\n", shared.StatusLabel(r.Status), r.Path)
	if r.Err != nil {
		fmt.Fprintf(builder, "  error: %s\n", oneLine(r.Error()))
	}
	for _, key := range r.Changed {
		fmt.Fprintf(builder, "  %s: %q -> %q\n", key, r.Before[key], r.After[key])
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
