// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfmeta

import "sort"

// Snapshot maps every Info dictionary key to its decoded value
type Snapshot map[string]string

// Keys returns the keys of s in sorted order
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnionKeys returns the sorted union of the keys of s and other
func (s Snapshot) UnionKeys(other Snapshot) []string {
	seen := make(map[string]bool, len(s)+len(other))
	for k := range s {
		seen[k] = true
	}
	for k := range other {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Changed returns the sorted keys whose values differ between s and other.
// A missing key and an empty value are treated alike.
func (s Snapshot) Changed(other Snapshot) []string {
	var changed []string
	for _, k := range s.UnionKeys(other) {
		if s[k] != other[k] {
			changed = append(changed, k)
		}
	}
	return changed
}

// Equal reports whether s and other hold the same values
func (s Snapshot) Equal(other Snapshot) bool {
	return len(s.Changed(other)) == 0
}
