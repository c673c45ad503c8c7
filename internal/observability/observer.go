// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"time"
)

// StandardObserver records timed operations and, in debug mode, writes each
// one as a JSON line
type StandardObserver struct {
	level  ObservabilityLevel
	writer io.Writer
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// StartTiming returns a function that completes the operation and returns
// its record
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(err error, metadata map[string]interface{}) OperationData {
	start := time.Now()

	return func(err error, metadata map[string]interface{}) OperationData {
		data := OperationData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			StartedAt:  start,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    err == nil,
			Metadata:   metadata,
		}
		if err != nil {
			data.Error = err.Error()
		}

		o.LogOperation(data)
		return data
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data OperationData) {
	if o == nil || o.level != ObservabilityDebug || o.writer == nil {
		return
	}
	json.NewEncoder(o.writer).Encode(data)
}

// OperationData describes one timed operation
type OperationData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	FilePath   string                 `json:"file_path,omitempty"`
	StartedAt  time.Time              `json:"started_at"`
	DurationMs int64                  `json:"duration_ms"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
