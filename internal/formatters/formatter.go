// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ebook-meta/internal/batch"
)

// DefaultFormat is used when no report format is configured and the report
// file extension names none
const DefaultFormat = "json"

// FormatterOptions describes the run a report is written for
type FormatterOptions struct {
	Directory string // Directory that was scanned
	Template  string // Filename template
	DryRun    bool   // Whether changes were saved
	Version   string // Tool version
}

// Formatter interface defines methods that all report formatters must implement
type Formatter interface {
	// Format renders the run statistics in the formatter's output format
	Format(stats *batch.Stats, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "yaml", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".yaml")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForPath returns the name of the formatter whose file extension matches
// path, or "" when none does
func (r *Registry) ForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if ext == ".yml" {
		ext = ".yaml"
	}
	for _, name := range r.List() {
		if r.formatters[name].FileExtension() == ext {
			return name
		}
	}
	return ""
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// ResolveFormat picks the report format: the explicit format when given,
// else the one implied by the report file extension, else DefaultFormat
func ResolveFormat(format, path string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if name := DefaultRegistry.ForPath(path); name != "" {
		return name
	}
	return DefaultFormat
}

// Export renders stats with the named formatter
func Export(format string, stats *batch.Stats, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		availableFormats := List()
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(availableFormats, ", "))
	}
	return formatter.Format(stats, options)
}
