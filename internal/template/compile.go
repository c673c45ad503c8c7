// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyTemplate is returned when compiling an empty filename template
var ErrEmptyTemplate = errors.New("filename template is empty")

// placeholderPattern finds the placeholders that become capture groups
var placeholderPattern = regexp.MustCompile(`\{(author|type|year|ausgabe|month|day)\}`)

// captureExpr maps each recognized placeholder to its capture group
var captureExpr = map[string]string{
	FieldAuthor:  `(.+?)`,
	FieldType:    `(.+?)`,
	FieldYear:    `([0-9]{4})`,
	FieldAusgabe: `([0-9]+)`,
	FieldMonth:   `([0-9]{2})`,
	FieldDay:     `([0-9]{2})`,
}

// FieldPattern returns the regular expression a placeholder captures, or ""
// for an unknown field
func FieldPattern(field string) string {
	return captureExpr[field]
}

// Pattern is a compiled filename template.
// It is immutable after Compile and may be reused for any number of filenames.
type Pattern struct {
	source string
	re     *regexp.Regexp
	groups []string // groups[i] is the field captured by submatch i+1
}

// Compile turns a filename template such as
//
//	{author} {type} {year} - Ausgabe {ausgabe} ({year}-{month}-{day})
//
// into an anchored regular expression. Literal text is matched exactly,
// unrecognized {tokens} stay literal, and the group order follows the order
// in which the placeholders appear in the template.
func Compile(tmpl string) (*Pattern, error) {
	if tmpl == "" {
		return nil, ErrEmptyTemplate
	}

	var expr strings.Builder
	var groups []string

	expr.WriteString("^")
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(tmpl, -1) {
		expr.WriteString(regexp.QuoteMeta(tmpl[last:loc[0]]))
		field := tmpl[loc[2]:loc[3]]
		expr.WriteString(captureExpr[field])
		groups = append(groups, field)
		last = loc[1]
	}
	expr.WriteString(regexp.QuoteMeta(tmpl[last:]))
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile template %q: %w", tmpl, err)
	}

	return &Pattern{
		source: tmpl,
		re:     re,
		groups: groups,
	}, nil
}

// Match extracts the fields from name. The second return value is false when
// name does not conform to the template, which is an expected outcome.
// When a placeholder occurs more than once, the last occurrence wins.
func (p *Pattern) Match(name string) (FieldSet, bool) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return nil, false
	}

	fields := make(FieldSet, len(p.groups))
	for i, field := range p.groups {
		fields[field] = m[i+1]
	}
	return fields, true
}

// Fields returns the field captured by each group, in group order
func (p *Pattern) Fields() []string {
	out := make([]string, len(p.groups))
	copy(out, p.groups)
	return out
}

// Template returns the template the pattern was compiled from
func (p *Pattern) Template() string {
	return p.source
}

// String returns the regular expression source
func (p *Pattern) String() string {
	return p.re.String()
}
