// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"testing"
	"time"

	"ebook-meta/internal/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magazineFields(t *testing.T) template.FieldSet {
	t.Helper()
	p, err := template.Compile("{author} {type} {year} - Ausgabe {ausgabe} ({year}-{month}-{day})")
	require.NoError(t, err)
	fields, ok := p.Match("Smith Report 2023 - Ausgabe 12 (2023-05-01)")
	require.True(t, ok)
	return fields
}

func TestPlan_Defaults(t *testing.T) {
	u := Plan(magazineFields(t), Templates{})

	assert.Equal(t, "Smith", u.Author)
	assert.Equal(t, "12/23", u.Title)
	assert.Equal(t, "Smith Report 12/23", u.Subject)
	assert.Equal(t, "Smith Report 12/2023", u.Description)
	assert.Equal(t, "2023-05-01", u.Date)
	assert.Equal(t, "D:20230501000000+00'00'", u.PDFDate)
}

func TestPlan_CustomTemplates(t *testing.T) {
	u := Plan(magazineFields(t), Templates{
		Title:       "{ausgabe}/{year}",
		Subject:     "{author} - {type} {ausgabe}/{year}",
		Description: "{type} {year[1:3]}",
	})

	assert.Equal(t, "12/2023", u.Title)
	assert.Equal(t, "Smith - Report 12/2023", u.Subject)
	assert.Equal(t, "Report 02", u.Description)
}

func TestPlan_TemplatesKeepSpacing(t *testing.T) {
	fields := template.FieldSet{"author": "Smith", "ausgabe": "3", "year": "2022"}

	u := Plan(fields, Templates{
		Title:       " {ausgabe} ",
		Subject:     "{type} {author}",
		Description: "{author}  ",
	})
	assert.Equal(t, " 3 ", u.Title)
	assert.Equal(t, " Smith", u.Subject)
	assert.Equal(t, "Smith  ", u.Description)

	u = Plan(template.FieldSet{"type": "Report"}, Templates{Title: "{ausgabe}"})
	assert.Equal(t, "Report", u.Subject, "the default subject drops blanks left by missing fields")
}

func TestPlan_MissingFields(t *testing.T) {
	p, err := template.Compile("{author} - {type}")
	require.NoError(t, err)
	fields, ok := p.Match("Doe - Newsletter")
	require.True(t, ok)

	u := Plan(fields, Templates{})
	assert.Equal(t, "/", u.Title)
	assert.Equal(t, "Doe Newsletter /", u.Subject)
	assert.Equal(t, "Doe Newsletter /", u.Description)
	assert.Empty(t, u.Date)
	assert.Empty(t, u.PDFDate)

	entries := u.Entries()
	assert.NotContains(t, entries, KeyCreationDate)
	assert.NotContains(t, entries, KeyModDate)
}

func TestUpdate_Entries(t *testing.T) {
	u := Plan(magazineFields(t), Templates{})
	entries := u.Entries()

	assert.Equal(t, map[string]string{
		KeyAuthor:       "Smith",
		KeyTitle:        "12/23",
		KeySubject:      "Smith Report 12/23",
		KeyKeywords:     "Smith Report 12/2023",
		KeyCreator:      "",
		KeyProducer:     "",
		KeyTrapped:      "",
		KeyCreationDate: "D:20230501000000+00'00'",
		KeyModDate:      "D:20230501000000+00'00'",
	}, entries)
}

func TestDateFromFields(t *testing.T) {
	cases := []struct {
		name   string
		fields template.FieldSet
		want   string
		ok     bool
	}{
		{"complete", template.FieldSet{"year": "2024", "month": "02", "day": "29"}, "2024-02-29", true},
		{"invalid day", template.FieldSet{"year": "2023", "month": "02", "day": "30"}, "", false},
		{"invalid month", template.FieldSet{"year": "2023", "month": "13", "day": "01"}, "", false},
		{"missing day", template.FieldSet{"year": "2023", "month": "02"}, "", false},
		{"empty", template.FieldSet{}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := DateFromFields(tc.fields)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, d.Format("2006-01-02"))
			}
		})
	}
}

func TestFormatPDFDate(t *testing.T) {
	d := time.Date(1999, time.December, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "D:19991207000000+00'00'", FormatPDFDate(d))
}
