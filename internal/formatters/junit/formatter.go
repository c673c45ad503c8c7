// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package junit

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ebook-meta/internal/batch"
	"ebook-meta/internal/formatters"
	"ebook-meta/internal/formatters/shared"
)

// TestSuites represents the root element of JUnit XML
type TestSuites struct {
	XMLName    xml.Name    `xml:"testsuites"`
	Name       string      `xml:"name,attr"`
	Tests      int         `xml:"tests,attr"`
	Failures   int         `xml:"failures,attr"`
	Errors     int         `xml:"errors,attr"`
	Skipped    int         `xml:"skipped,attr"`
	Time       string      `xml:"time,attr"`
	TestSuites []TestSuite `xml:"testsuite"`
}

// TestSuite represents a test suite in JUnit XML
type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Errors    int        `xml:"errors,attr"`
	Skipped   int        `xml:"skipped,attr"`
	Time      string     `xml:"time,attr"`
	TestCases []TestCase `xml:"testcase"`
}

// TestCase is one processed file
type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      string   `xml:"time,attr"`
	Error     *Failure `xml:"error,omitempty"`
	Skipped   *Skipped `xml:"skipped,omitempty"`
	SystemOut string   `xml:"system-out,omitempty"`
}

// Failure carries the error of a failed file
type Failure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// Skipped marks a file whose name did not match the template
type Skipped struct {
	Message string `xml:"message,attr"`
}

// Formatter implements JUnit XML output formatting
type Formatter struct{}

// NewFormatter creates a new JUnit formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "junit"
}

func (f *Formatter) Description() string {
	return "JUnit XML run report for CI/CD dashboards"
}

func (f *Formatter) FileExtension() string {
	return ".xml"
}

func (f *Formatter) Format(stats *batch.Stats, options formatters.FormatterOptions) (string, error) {
	var duration time.Duration
	var results []batch.Result
	if stats != nil {
		duration = stats.Duration
		results = stats.Results
	}

	suite := TestSuite{
		Name:      "metadata-update",
		Time:      seconds(duration),
		TestCases: []TestCase{},
	}

	for _, r := range results {
		tc := TestCase{
			Name:      filepath.Base(r.Path),
			ClassName: filepath.Dir(r.Path),
			Time:      seconds(r.Duration),
		}

		switch r.Status {
		case batch.StatusFailed:
			tc.Error = &Failure{
				Message: r.Error(),
				Type:    "ProcessingError",
				Content: r.Error(),
			}
			suite.Errors++
		case batch.StatusUnrecognized:
			tc.Skipped = &Skipped{Message: "filename format not recognized"}
			suite.Skipped++
		default:
			tc.SystemOut = f.describe(r)
		}

		suite.TestCases = append(suite.TestCases, tc)
		suite.Tests++
	}

	testSuites := TestSuites{
		Name:       "ebook-meta",
		Tests:      suite.Tests,
		Errors:     suite.Errors,
		Skipped:    suite.Skipped,
		Time:       suite.Time,
		TestSuites: []TestSuite{suite},
	}

	xmlData, err := xml.MarshalIndent(testSuites, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JUnit XML: %w", err)
	}

	// Add XML declaration
	return xml.Header + string(xmlData) + "\n", nil
}

func (f *Formatter) describe(r batch.Result) string {
	label := shared.StatusLabel(r.Status)
	if len(r.Changed) == 0 {
		return label
	}
	return label + ": " + strings.Join(r.Changed, ", ")
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
