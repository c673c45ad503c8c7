// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/formatters"
	_ "ebook-meta/internal/formatters/csv"
	_ "ebook-meta/internal/formatters/json"
	_ "ebook-meta/internal/formatters/junit"
	"ebook-meta/internal/formatters/shared"
	_ "ebook-meta/internal/formatters/text"
	_ "ebook-meta/internal/formatters/yaml"
	"ebook-meta/internal/pdfmeta"
	"ebook-meta/internal/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleStats() *batch.Stats {
	return &batch.Stats{
		Total:        3,
		Updated:      1,
		Unrecognized: 1,
		Failed:       1,
		StartedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		Results: []batch.Result{
			{
				Path:    "/mags/Smith Report 2023 - Ausgabe 12 (2023-05-01).pdf",
				Status:  batch.StatusUpdated,
				Fields:  template.FieldSet{"author": "Smith", "ausgabe": "12"},
				Before:  pdfmeta.Snapshot{"Title": "old", "Producer": "=Writer"},
				After:   pdfmeta.Snapshot{"Title": "12/23"},
				Changed: []string{"Producer", "Title"},
				Pages:   4,
				Version: "1.4",
			},
			{Path: "/mags/scan.pdf", Status: batch.StatusUnrecognized},
			{Path: "/mags/broken.pdf", Status: batch.StatusFailed, Err: errors.New("failed to read PDF: bad xref")},
		},
	}
}

var options = formatters.FormatterOptions{
	Directory: "/mags",
	Template:  "{author} {type}",
	Version:   "1.0.0",
}

func TestRegistry_List(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "junit", "text", "yaml"}, formatters.List())

	f, ok := formatters.Get("yaml")
	require.True(t, ok)
	assert.Equal(t, ".yaml", f.FileExtension())
	assert.NotEmpty(t, f.Description())
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		name   string
		format string
		path   string
		want   string
	}{
		{"explicit wins", "YAML", "report.json", "yaml"},
		{"json extension", "", "out/report.json", "json"},
		{"yml extension", "", "report.yml", "yaml"},
		{"xml extension", "", "report.xml", "junit"},
		{"csv extension", "", "report.CSV", "csv"},
		{"unknown extension", "", "report.out", formatters.DefaultFormat},
		{"no extension", "", "report", formatters.DefaultFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatters.ResolveFormat(tc.format, tc.path))
		})
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	_, err := formatters.Export("sarif", sampleStats(), options)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available formats: csv, json")
}

func TestExport_JSON(t *testing.T) {
	out, err := formatters.Export("json", sampleStats(), options)
	require.NoError(t, err)

	var report shared.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "/mags", report.Run.Directory)
	assert.Equal(t, "2024-03-01T10:00:00Z", report.Run.StartedAt)
	assert.Equal(t, int64(1500), report.Run.DurationMs)
	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Failed)
	require.Len(t, report.Results, 3)

	updated := report.Results[0]
	assert.Equal(t, "updated", updated.Status)
	assert.Equal(t, 4, updated.Pages)
	assert.Equal(t, "Smith", updated.Fields["author"])
	assert.Equal(t, []shared.Change{
		{Key: "Producer", Before: "=Writer", After: ""},
		{Key: "Title", Before: "old", After: "12/23"},
	}, updated.Changes)

	assert.Equal(t, "failed to read PDF: bad xref", report.Results[2].Error)
}

func TestExport_YAMLMatchesJSON(t *testing.T) {
	jsonOut, err := formatters.Export("json", sampleStats(), options)
	require.NoError(t, err)
	yamlOut, err := formatters.Export("yaml", sampleStats(), options)
	require.NoError(t, err)

	var fromJSON, fromYAML shared.Report
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &fromJSON))
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut), &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)
}

func TestExport_EmptyRun(t *testing.T) {
	out, err := formatters.Export("json", &batch.Stats{}, options)
	require.NoError(t, err)
	assert.Contains(t, out, `"results": []`)
}

func TestExport_CSV(t *testing.T) {
	out, err := formatters.Export("csv", sampleStats(), options)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Path,Status,Key,Current Value,Updated Value,Error", lines[0])
	assert.Equal(t, "/mags/Smith Report 2023 - Ausgabe 12 (2023-05-01).pdf,updated,Producer,'=Writer,,", lines[1])
	assert.Equal(t, "/mags/scan.pdf,unrecognized,,,,", lines[3])
	assert.Equal(t, "/mags/broken.pdf,failed,,,,failed to read PDF: bad xref", lines[4])
}

func TestExport_JUnit(t *testing.T) {
	out, err := formatters.Export("junit", sampleStats(), options)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<testsuites name="ebook-meta" tests="3" failures="0" errors="1" skipped="1" time="1.500">`)
	assert.Contains(t, out, `<skipped message="filename format not recognized"></skipped>`)
	assert.Contains(t, out, `<system-out>updated: Producer, Title</system-out>`)
}

func TestExport_Text(t *testing.T) {
	out, err := formatters.Export("text", sampleStats(), options)
	require.NoError(t, err)

	assert.Contains(t, out, "[updated] /mags/Smith Report 2023 - Ausgabe 12 (2023-05-01).pdf")
	assert.Contains(t, out, `  Title: "old" -> "12/23"`)
	assert.Contains(t, out, "[not recognized] /mags/scan.pdf")
	assert.Contains(t, out, "  error: failed to read PDF: bad xref")
	assert.True(t, strings.HasSuffix(out, "Processed 3 file(s): 1 updated, 0 unchanged, 1 not recognized, 1 failed\n"))
}
