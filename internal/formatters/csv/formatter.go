// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/formatters"
	"ebook-meta/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "One row per changed key for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(stats *batch.Stats, options formatters.FormatterOptions) (string, error) {
	report := shared.ConvertStats(stats, options)

	headers := []string{"Path", "Status", "Key", "Current Value", "Updated Value", "Error"}
	csvRows := []string{strings.Join(headers, ",")}

	for _, r := range report.Results {
		if len(r.Changes) == 0 {
			csvRows = append(csvRows, f.row(r.Path, r.Status, "", "", "", r.Error))
			continue
		}
		for _, c := range r.Changes {
			csvRows = append(csvRows, f.row(r.Path, r.Status, c.Key, c.Before, c.After, r.Error))
		}
	}

	return strings.Join(csvRows, "\n") + "\n", nil
}

func (f *Formatter) row(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = f.escapeCSVField(field)
	}
	return strings.Join(escaped, ",")
}

// escapeCSVField properly escapes a field for CSV format
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection neutralizes fields a spreadsheet would evaluate
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
