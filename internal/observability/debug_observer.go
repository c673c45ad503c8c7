// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DebugObserver provides detailed step-by-step debugging. A nil
// *DebugObserver discards everything.
type DebugObserver struct {
	*StandardObserver
	indent int
}

// NewDebugObserver creates a debug observer with step-by-step logging
func NewDebugObserver(writer io.Writer) *DebugObserver {
	return &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, writer),
	}
}

// StartStep begins a processing step with indentation
func (d *DebugObserver) StartStep(component, step, filePath string) func(success bool, details string) {
	if d == nil {
		return func(bool, string) {}
	}

	start := time.Now()
	d.printf("🔄 %s: %s (%s)\n", component, step, filePath)
	d.indent++

	return func(success bool, details string) {
		d.indent--
		ms := time.Since(start).Milliseconds()
		if success {
			d.printf("✅ %s: %s completed (%dms) %s\n", component, step, ms, details)
		} else {
			d.printf("❌ %s: %s failed (%dms) %s\n", component, step, ms, details)
		}
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	if d == nil {
		return
	}
	d.printf("   → %s: %s\n", component, detail)
}

// LogMetric logs a metric value
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	if d == nil {
		return
	}
	d.printf("   📊 %s: %s = %v\n", component, metric, value)
}

func (d *DebugObserver) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.writer, strings.Repeat("  ", d.indent)+format, args...)
}

// Standard returns the embedded StandardObserver, or nil for a nil d
func (d *DebugObserver) Standard() *StandardObserver {
	if d == nil {
		return nil
	}
	return d.StandardObserver
}
