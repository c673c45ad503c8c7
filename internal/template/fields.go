// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package template

import "sort"

// Field names recognized in filename templates
const (
	FieldAuthor  = "author"
	FieldType    = "type"
	FieldYear    = "year"
	FieldAusgabe = "ausgabe"
	FieldMonth   = "month"
	FieldDay     = "day"
)

// KnownFields lists the recognized fields in documentation order
var KnownFields = []string{FieldAuthor, FieldType, FieldYear, FieldAusgabe, FieldMonth, FieldDay}

// FieldSet holds the values captured from a filename.
// Fields that were not captured are absent and render as the empty string.
type FieldSet map[string]string

// Get returns the value of a field and whether it was captured
func (fs FieldSet) Get(name string) (string, bool) {
	v, ok := fs[name]
	return v, ok
}

// Value returns the value of a field, or "" if it was not captured
func (fs FieldSet) Value(name string) string {
	return fs[name]
}

// Has reports whether all named fields were captured with a non-empty value
func (fs FieldSet) Has(names ...string) bool {
	for _, name := range names {
		if fs[name] == "" {
			return false
		}
	}
	return true
}

// Names returns the captured field names in sorted order
func (fs FieldSet) Names() []string {
	names := make([]string, 0, len(fs))
	for name := range fs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
