// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package template

import "regexp"

// outputPlaceholder matches {field} and {field[slice]}
var outputPlaceholder = regexp.MustCompile(`\{([a-z]+)(\[[^\]]*\])?\}`)

// Render substitutes fields into an output template. Unknown or uncaptured
// fields render as the empty string. A slice expression such as {year[-2:]}
// is applied to non-empty values; if it cannot be evaluated the raw value is
// used instead.
func Render(tmpl string, fields FieldSet) string {
	return outputPlaceholder.ReplaceAllStringFunc(tmpl, func(token string) string {
		m := outputPlaceholder.FindStringSubmatch(token)
		value := fields.Value(m[1])
		if value == "" || m[2] == "" {
			return value
		}

		sliced, err := ApplySlice(value, m[2])
		if err != nil {
			return value
		}
		return sliced
	})
}
