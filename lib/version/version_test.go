// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestFormatWithoutVCS(t *testing.T) {
	if got := format("", false, ""); got != Version {
		t.Errorf("format with no VCS info = %q, want %q", got, Version)
	}
}

func TestFormatWithVCS(t *testing.T) {
	got := format("abc123def456", true, "2026-01-02T15:04:05Z")
	for _, want := range []string{Version, "abc123def456", "-dirty", "2026-01-02T15:04:05Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("format() = %q, missing %q", got, want)
		}
	}
	if got := format("abc123def456", false, ""); strings.Contains(got, "-dirty") {
		t.Errorf("format() = %q, clean tree marked dirty", got)
	}
}

func TestStringNeverEmpty(t *testing.T) {
	if String() == "" {
		t.Error("String() returned empty")
	}
}
