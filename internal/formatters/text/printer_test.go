// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/pdfmeta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, true), &out, &errOut
}

func TestFormatComparison(t *testing.T) {
	before := pdfmeta.Snapshot{"Title": "old", "Author": "Smith", "Producer": "Writer"}
	after := pdfmeta.Snapshot{"Title": "12/23", "Author": "Smith", "Keywords": "Smith Report"}

	out := FormatComparison(before, after, nil, nil)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)

	rule := strings.Repeat("─", 128)
	assert.Equal(t, rule, lines[0])
	assert.Equal(t, rule, lines[2])
	assert.Equal(t, rule, lines[7])
	assert.Equal(t, "Status   Property             Current Value                                 Updated Value                                ", lines[1])

	assert.True(t, strings.HasPrefix(lines[3], "🟢        Author               Smith"))
	assert.True(t, strings.HasPrefix(lines[4], "🔴        Keywords                                                           Smith Report"))
	assert.True(t, strings.HasPrefix(lines[5], "🔴        Producer             Writer"))
	assert.True(t, strings.HasPrefix(lines[6], "🔴        Title                old"))
}

func TestFormatComparison_TruncatesAndFlattens(t *testing.T) {
	long := strings.Repeat("ä", 50)
	before := pdfmeta.Snapshot{"Subject": "line one\nline two"}
	after := pdfmeta.Snapshot{"Subject": long}

	out := FormatComparison(before, after, nil, nil)
	assert.Contains(t, out, "line one line two")
	assert.Contains(t, out, strings.Repeat("ä", 43))
	assert.NotContains(t, out, strings.Repeat("ä", 44))
}

func TestFormatComparison_TruncationHidesTailDifference(t *testing.T) {
	prefix := strings.Repeat("x", 43)
	out := FormatComparison(pdfmeta.Snapshot{"Title": prefix + "a"}, pdfmeta.Snapshot{"Title": prefix + "b"}, nil, nil)
	assert.Contains(t, out, "🟢")
	assert.NotContains(t, out, "🔴")
}

func TestPrinter_Messages(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Processing("/a/x.pdf")
	p.NotRecognized("/a/x.pdf")
	p.Failed("/a/y.pdf", errors.New("boom"))
	p.Updated("/a/z.pdf")
	p.Skipped("/a/w.pdf")
	p.NoFiles()
	p.Warning("cannot read %s", "/a/locked")

	assert.Equal(t, strings.Join([]string{
		"Processing /a/x.pdf",
		"No update needed for /a/x.pdf (filename format not recognized)",
		"",
		"Error processing /a/y.pdf: boom",
		"",
		"Updated metadata for /a/z.pdf",
		"",
		"Dry run: changes for /a/w.pdf not saved",
		"",
		"No PDF files found in the directory.",
		"",
	}, "\n"), out.String())
	assert.Equal(t, "Warning: cannot read /a/locked\n", errOut.String())
}

func TestPrinter_Available(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.Available("/a/x.pdf", pdfmeta.Snapshot{"Title": "T", "Author": "A\nB"}, 3, "1.7")
	assert.Equal(t, "Available metadata for /a/x.pdf (3 pages, PDF 1.7):\n  Author: A B\n  Title: T\n", out.String())

	out.Reset()
	p.Available("/a/y.pdf", pdfmeta.Snapshot{}, 1, "1.4")
	assert.Contains(t, out.String(), "(none)")
}

func TestSummaryLine(t *testing.T) {
	stats := &batch.Stats{Total: 5, Updated: 2, Unchanged: 1, Unrecognized: 1, Failed: 1}
	assert.Equal(t, "Processed 5 file(s): 2 updated, 1 unchanged, 1 not recognized, 1 failed", SummaryLine(stats))

	stats.Skipped = 2
	assert.Equal(t, "Processed 5 file(s): 2 updated, 1 unchanged, 1 not recognized, 1 failed, 2 skipped (dry run)", SummaryLine(stats))

	assert.Equal(t, "Processed 0 file(s): 0 updated, 0 unchanged, 0 not recognized, 0 failed", SummaryLine(nil))
}

func TestPrinter_Colors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, false)
	p.Updated("/a/z.pdf")
	assert.Contains(t, out.String(), "\x1b[")
}
