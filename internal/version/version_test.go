// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "ebook-meta "+Version+" ") {
		t.Errorf("unexpected version info: %q", info)
	}
	if !strings.Contains(info, Platform) {
		t.Errorf("version info should name the platform: %q", info)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
