// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"errors"
	"os"
	"syscall"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown   ErrorType = iota
	ErrorTypeTransient           // Busy or interrupted file operations
	ErrorTypePermanent           // Missing files, bad paths
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeTransient:
		return "Transient"
	case ErrorTypePermanent:
		return "Permanent"
	default:
		return "Unknown"
	}
}

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original error
	Type     ErrorType
}

func (e *ClassifiedError) Error() string {
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Type == ErrorTypeTransient
}

// NewTransientError marks err as worth retrying
func NewTransientError(err error) *ClassifiedError {
	return &ClassifiedError{Original: err, Type: ErrorTypeTransient}
}

// NewPermanentError marks err as final
func NewPermanentError(err error) *ClassifiedError {
	return &ClassifiedError{Original: err, Type: ErrorTypePermanent}
}

// ClassifyError categorizes a file system error. Busy, interrupted and
// would-block errors are transient; everything else is permanent.
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case errors.Is(err, syscall.EBUSY),
		errors.Is(err, syscall.EAGAIN),
		errors.Is(err, syscall.EINTR),
		errors.Is(err, os.ErrDeadlineExceeded):
		return NewTransientError(err)
	default:
		return NewPermanentError(err)
	}
}

// IsRetryable reports whether an error should be retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).IsRetryable()
}
