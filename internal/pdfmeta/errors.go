// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfmeta

import "fmt"

// Operations reported in a FileError
const (
	OpOpen     = "open"
	OpRead     = "read"
	OpValidate = "validate"
	OpSnapshot = "snapshot"
	OpApply    = "apply"
	OpSave     = "save"
)

// FileError records a failure while processing a single PDF file
type FileError struct {
	// Op is the operation that failed
	Op string

	// Path is the file being processed
	Path string

	// Err is the underlying error
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s PDF: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Err
}
