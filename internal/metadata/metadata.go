// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"strings"
	"time"

	"ebook-meta/internal/template"
)

// Default output templates used when no template is configured
const (
	DefaultTitleTemplate       = "{ausgabe}/{year[-2:]}"
	DefaultDescriptionTemplate = "{author} {type} {ausgabe}/{year}"
)

// Info dictionary keys written by the updater
const (
	KeyTitle        = "Title"
	KeyAuthor       = "Author"
	KeySubject      = "Subject"
	KeyKeywords     = "Keywords"
	KeyCreator      = "Creator"
	KeyProducer     = "Producer"
	KeyTrapped      = "Trapped"
	KeyCreationDate = "CreationDate"
	KeyModDate      = "ModDate"
)

// isoDate is the layout of the date assembled from year, month and day
const isoDate = "2006-01-02"

// Templates holds the optional output templates. Empty means "use the default".
type Templates struct {
	Title       string
	Subject     string
	Description string
}

// Update is the set of Info dictionary changes derived from one filename
type Update struct {
	Author      string
	Title       string
	Subject     string
	Description string

	// Date is the ISO 8601 date (YYYY-MM-DD) built from the filename, or ""
	Date string

	// PDFDate is Date in PDF date syntax, or ""
	PDFDate string
}

// Plan renders the output templates against the captured fields
func Plan(fields template.FieldSet, t Templates) Update {
	u := Update{
		Author: fields.Value(template.FieldAuthor),
	}

	titleTmpl := t.Title
	if titleTmpl == "" {
		titleTmpl = DefaultTitleTemplate
	}
	u.Title = template.Render(titleTmpl, fields)

	if t.Subject != "" {
		u.Subject = template.Render(t.Subject, fields)
	} else {
		u.Subject = strings.TrimSpace(strings.Join([]string{
			fields.Value(template.FieldAuthor),
			fields.Value(template.FieldType),
			u.Title,
		}, " "))
	}

	descTmpl := t.Description
	if descTmpl == "" {
		descTmpl = DefaultDescriptionTemplate
	}
	u.Description = template.Render(descTmpl, fields)

	if date, ok := DateFromFields(fields); ok {
		u.Date = date.Format(isoDate)
		u.PDFDate = FormatPDFDate(date)
	}

	return u
}

// Entries returns the Info dictionary contents implied by u. An empty value
// means the key is removed.
func (u Update) Entries() map[string]string {
	entries := map[string]string{
		KeyAuthor:   u.Author,
		KeyTitle:    u.Title,
		KeySubject:  u.Subject,
		KeyKeywords: u.Description,
		KeyCreator:  "",
		KeyProducer: "",
		KeyTrapped:  "",
	}
	if u.PDFDate != "" {
		entries[KeyCreationDate] = u.PDFDate
		entries[KeyModDate] = u.PDFDate
	}
	return entries
}

// DateFromFields builds a calendar date from the year, month and day fields.
// It fails when any of them is missing or the date does not exist.
func DateFromFields(fields template.FieldSet) (time.Time, bool) {
	if !fields.Has(template.FieldYear, template.FieldMonth, template.FieldDay) {
		return time.Time{}, false
	}
	s := fields.Value(template.FieldYear) + "-" + fields.Value(template.FieldMonth) + "-" + fields.Value(template.FieldDay)
	d, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FormatPDFDate formats t as a PDF date string at midnight UTC
func FormatPDFDate(t time.Time) string {
	return "D:" + t.Format("20060102") + "000000+00'00'"
}
