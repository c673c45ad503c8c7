// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
)

// AppName names the per-user configuration directory
const AppName = "ebook-meta"

// EnvConfigDir overrides the configuration directory
const EnvConfigDir = "EBOOK_META_CONFIG_DIR"

// GetConfigDir returns the ebook-meta configuration directory, or "" when
// the user configuration directory cannot be determined.
// Uses os.UserConfigDir: XDG_CONFIG_HOME or ~/.config on Unix,
// ~/Library/Application Support on macOS and %AppData% on Windows.
func GetConfigDir() string {
	// Check for explicit override first (works on all platforms)
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, AppName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	dir := GetConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
