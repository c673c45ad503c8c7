// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ebook-meta/internal/metadata"
	"ebook-meta/internal/paths"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvDirectory    = "DIRECTORY"
	EnvTemplate     = "TEMPLATE"
	EnvTitle        = "TITLE"
	EnvSubject      = "SUBJECT"
	EnvDescription  = "DESCRIPTION"
	EnvLogAvailable = "LOG_AVAILABLE"
	EnvConfig       = "CONFIG"
	EnvDryRun       = "DRY_RUN"
	EnvNoColor      = "NO_COLOR"
	EnvDebug        = "DEBUG"
	EnvReport       = "REPORT"
	EnvReportFormat = "REPORT_FORMAT"
)

var (
	// ErrMissingDirectory is returned when no directory is configured
	ErrMissingDirectory = errors.New("missing required setting: DIRECTORY")

	// ErrMissingTemplate is returned when no filename template is configured
	ErrMissingTemplate = errors.New("missing required setting: TEMPLATE")

	// ErrNotDirectory is returned when the configured directory is not a directory
	ErrNotDirectory = errors.New("provided path is not a directory")
)

// Config represents the application configuration
type Config struct {
	// Directory is the root searched recursively for PDF files
	Directory string `yaml:"directory"`

	// Template is the filename template, e.g. "{author} {type} {year}"
	Template string `yaml:"template"`

	// Output templates; empty selects the built-in default
	Templates struct {
		Title       string `yaml:"title"`
		Subject     string `yaml:"subject"`
		Description string `yaml:"description"`
	} `yaml:"templates"`

	LogAvailable bool `yaml:"log_available"`
	DryRun       bool `yaml:"dry_run"`
	NoColor      bool `yaml:"no_color"`
	Debug        bool `yaml:"debug"`

	// Machine readable run report
	Report struct {
		File   string `yaml:"file"`
		Format string `yaml:"format"`
	} `yaml:"report"`
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{}
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the current directory and
// then in the user configuration directory. It returns "" when none exists.
func FindConfigFile() string {
	for _, name := range []string{"ebook-meta.yaml", "ebook-meta.yml", ".ebook-meta.yaml", ".ebook-meta.yml"} {
		if fileExists(name) {
			return name
		}
	}

	if standardConfig := paths.GetConfigFile(); standardConfig != "" && fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// Load resolves the configuration file (explicit path, then CONFIG, then the
// standard locations), loads it and applies the environment on top.
func Load(explicitPath string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	configPath := explicitPath
	if configPath == "" {
		configPath = getenv(EnvConfig)
	}
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings with the non-empty environment variables
func (c *Config) ApplyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		EnvDirectory:    &c.Directory,
		EnvTemplate:     &c.Template,
		EnvTitle:        &c.Templates.Title,
		EnvSubject:      &c.Templates.Subject,
		EnvDescription:  &c.Templates.Description,
		EnvReport:       &c.Report.File,
		EnvReportFormat: &c.Report.Format,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		EnvLogAvailable: &c.LogAvailable,
		EnvDryRun:       &c.DryRun,
		EnvNoColor:      &c.NoColor,
		EnvDebug:        &c.Debug,
	}
	for name, dst := range bools {
		v := getenv(name)
		if v == "" {
			continue
		}
		b, err := ParseBool(v)
		if err != nil {
			// NO_COLOR disables color whenever it is set to anything
			if name == EnvNoColor {
				b = true
			} else {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
		}
		*dst = b
	}
	return nil
}

// ParseBool accepts the strconv.ParseBool forms plus yes/no and on/off
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// Validate checks the required settings and that Directory is a directory
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if strings.TrimSpace(c.Directory) == "" {
		return ErrMissingDirectory
	}
	if c.Template == "" {
		return ErrMissingTemplate
	}

	info, err := os.Stat(c.Directory)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotDirectory, c.Directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, c.Directory)
	}
	return nil
}

// Missing returns the names of the required settings that are not set
func (c *Config) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.Directory) == "" {
		missing = append(missing, EnvDirectory)
	}
	if c.Template == "" {
		missing = append(missing, EnvTemplate)
	}
	return missing
}

// OutputTemplates returns the configured output templates
func (c *Config) OutputTemplates() metadata.Templates {
	return metadata.Templates{
		Title:       c.Templates.Title,
		Subject:     c.Templates.Subject,
		Description: c.Templates.Description,
	}
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
