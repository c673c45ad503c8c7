// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Directory)
	assert.Empty(t, cfg.Template)
	assert.False(t, cfg.LogAvailable)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.Report.File)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
directory: /srv/magazines
template: "{author} {type} {year}"
templates:
  title: "{ausgabe}/{year}"
  subject: "{author} - {type}"
log_available: true
dry_run: true
report:
  file: report.yaml
  format: yaml
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/magazines", cfg.Directory)
	assert.Equal(t, "{author} {type} {year}", cfg.Template)
	assert.Equal(t, "{ausgabe}/{year}", cfg.Templates.Title)
	assert.Equal(t, "{author} - {type}", cfg.Templates.Subject)
	assert.Empty(t, cfg.Templates.Description)
	assert.True(t, cfg.LogAvailable)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "report.yaml", cfg.Report.File)
	assert.Equal(t, "yaml", cfg.Report.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)

	path := writeConfig(t, ":::invalid yaml:::\n\t- [")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Directory = "/from/file"
	cfg.Templates.Title = "file title"

	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvDirectory:    "/from/env",
		EnvTemplate:     "{author}",
		EnvSubject:      "{type}",
		EnvDescription:  "{year}",
		EnvLogAvailable: "true",
		EnvDryRun:       "yes",
		EnvReportFormat: "yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Directory)
	assert.Equal(t, "{author}", cfg.Template)
	assert.Equal(t, "file title", cfg.Templates.Title, "unset variables keep the file value")
	assert.Equal(t, "{type}", cfg.Templates.Subject)
	assert.Equal(t, "{year}", cfg.Templates.Description)
	assert.True(t, cfg.LogAvailable)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "yaml", cfg.Report.Format)
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{EnvLogAvailable: "sometimes"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLogAvailable)
}

func TestApplyEnv_NoColorAnyValue(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvNoColor: "please"})))
	assert.True(t, cfg.NoColor)
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"on", true, false},
		{"false", false, false},
		{"0", false, false},
		{"No", false, false},
		{" off ", false, false},
		{"maybe", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBool(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
directory: /from/file
template: "{author} {year}"
`)

	cfg, err := Load("", envMap(map[string]string{
		EnvConfig:    path,
		EnvDirectory: "/from/env",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Directory)
	assert.Equal(t, "{author} {year}", cfg.Template)

	_, err = Load("/nonexistent/config.yaml", envMap(nil))
	assert.Error(t, err, "an explicit config file must exist")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	cases := []struct {
		name      string
		directory string
		template  string
		wantErr   error
	}{
		{"valid", dir, "{author}", nil},
		{"missing directory", "", "{author}", ErrMissingDirectory},
		{"missing template", dir, "", ErrMissingTemplate},
		{"not a directory", file, "{author}", ErrNotDirectory},
		{"does not exist", filepath.Join(dir, "missing"), "{author}", ErrNotDirectory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Directory = tc.directory
			cfg.Template = tc.template

			err := cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMissing(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{EnvDirectory, EnvTemplate}, cfg.Missing())

	cfg.Template = "{author}"
	assert.Equal(t, []string{EnvDirectory}, cfg.Missing())

	cfg.Directory = "/srv"
	assert.Empty(t, cfg.Missing())
}

func TestOutputTemplates(t *testing.T) {
	cfg := Default()
	cfg.Templates.Title = "t"
	cfg.Templates.Subject = "s"
	cfg.Templates.Description = "d"

	tmpl := cfg.OutputTemplates()
	assert.Equal(t, "t", tmpl.Title)
	assert.Equal(t, "s", tmpl.Subject)
	assert.Equal(t, "d", tmpl.Description)
}
