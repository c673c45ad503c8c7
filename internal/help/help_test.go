// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"testing"

	"ebook-meta/internal/template"

	"github.com/stretchr/testify/assert"
)

func TestFields_CoverKnownFields(t *testing.T) {
	var names []string
	for _, f := range Fields {
		names = append(names, f.Name)
		assert.NotEmpty(t, template.FieldPattern(f.Name), f.Name)
	}
	assert.Equal(t, template.KnownFields, names)
}

func TestShowFields(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowFields()

	out := buf.String()
	assert.Contains(t, out, "{ausgabe}")
	assert.Contains(t, out, "([0-9]{4})")
	assert.Contains(t, out, "captures author=Smith type=Report year=2023 ausgabe=12 month=05 day=01")
	assert.NotContains(t, out, "\x1b[")
}

func TestShowUsage(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowUsage()

	assert.Contains(t, buf.String(), "DIRECTORY - Path to directory containing PDF files")
	assert.Contains(t, buf.String(), "Example subject: {author} - {type} {ausgabe}/{year}")
}
