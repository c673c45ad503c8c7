// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PDFExtension is the extension of the files picked up by Discover
const PDFExtension = ".pdf"

// Discover walks root, collects regular files whose extension is .pdf in
// any letter case, and returns the paths sorted lexicographically.
// Subdirectories that cannot be read are reported to warn and skipped; an
// unreadable root is an error.
func Discover(root string, warn func(path string, err error)) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if warn != nil {
				warn(path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), PDFExtension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Stem returns the file name of path without directory and extension,
// in Unicode normalization form C.
func Stem(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}
