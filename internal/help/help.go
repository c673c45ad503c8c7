// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ebook-meta/internal/template"

	"github.com/fatih/color"
)

// FieldInfo describes one filename placeholder
type FieldInfo struct {
	Name        string // Placeholder name without braces (e.g., "ausgabe")
	Description string // What the captured value means
	Example     string // A value the placeholder would capture
}

// Fields documents the recognized placeholders in documentation order
var Fields = []FieldInfo{
	{template.FieldAuthor, "Author or publisher, matched lazily", "Smith"},
	{template.FieldType, "Publication type, matched lazily", "Report"},
	{template.FieldYear, "Four digit year", "2023"},
	{template.FieldAusgabe, "Issue number", "12"},
	{template.FieldMonth, "Two digit month, used for the document date", "05"},
	{template.FieldDay, "Two digit day, used for the document date", "01"},
}

// System renders help content
type System struct {
	out    io.Writer
	colors map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	h := &System{
		out: out,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
	for _, c := range h.colors {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return h
}

// ShowUsage prints the settings a run requires
func (h *System) ShowUsage() {
	fmt.Fprint(h.out, `Required:
  DIRECTORY - Path to directory containing PDF files
  TEMPLATE - Filename template pattern

Optional:
  TITLE - Title metadata template (supports {author}, {type}, {year}, {ausgabe}, {month}, {day})
  SUBJECT - Subject metadata template (supports {author}, {type}, {year}, {ausgabe}, {month}, {day})
  DESCRIPTION - Keywords metadata template (supports {author}, {type}, {year}, {ausgabe}, {month}, {day})
  LOG_AVAILABLE - Print all metadata keys found in each file (true/false)

Output templates accept slices such as {year[-2:]}.

Example template: {author} {type} {year} - Ausgabe {ausgabe} ({year}-{month}-{day})
Example title: {ausgabe}/{year}
Example subject: {author} - {type} {ausgabe}/{year}
`)
}

// ShowFields prints a table of the filename placeholders
func (h *System) ShowFields() {
	h.colors["title"].Fprintln(h.out, "Filename template placeholders")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, h.colors["header"].Sprint("PLACEHOLDER")+"\t"+h.colors["header"].Sprint("MATCHES")+"\t"+h.colors["header"].Sprint("DESCRIPTION"))
	for _, f := range Fields {
		fmt.Fprintf(w, "%s\t%s\t%s\n", h.colors["item"].Sprint("{"+f.Name+"}"), template.FieldPattern(f.Name), f.Description)
	}
	w.Flush()

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "Unknown {tokens} in a filename template are matched literally.")
	fmt.Fprintln(h.out, "Output templates may slice a value: {year[-2:]}, {author[:3]}.")
	fmt.Fprintln(h.out)

	example := make([]string, 0, len(Fields))
	for _, f := range Fields {
		example = append(example, f.Name+"="+f.Example)
	}
	h.colors["example"].Fprintln(h.out, "Example: \"Smith Report 2023 - Ausgabe 12 (2023-05-01).pdf\"")
	fmt.Fprintf(h.out, "  captures %s\n", strings.Join(example, " "))
}
