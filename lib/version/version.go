// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the sshsign build version.
//
// The semantic version is set via -ldflags at release time:
//
//	go build -ldflags "-X github.com/enveng-tools/sshsign/lib/version.Version=1.0.0"
//
// Commit and dirty-tree information comes from the VCS stamps the Go
// toolchain embeds in the binary, so plain `go build` in a checkout
// still produces an identifiable -V string.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the semantic version. This is set manually for releases.
var Version = "0.1.0-dev"

// String returns the one-line version used for -V output.
func String() string {
	return format(vcsInfo())
}

func format(revision string, modified bool, when string) string {
	if revision == "" {
		return Version
	}
	dirty := ""
	if modified {
		dirty = "-dirty"
	}
	if when == "" {
		return fmt.Sprintf("%s (%s%s)", Version, revision, dirty)
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, revision, dirty, when)
}

// vcsInfo reads the vcs.* build settings. All three return values are
// zero when the binary was built outside a checkout (or during tests,
// where the toolchain omits VCS stamping).
func vcsInfo() (revision string, modified bool, when string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false, ""
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		case "vcs.time":
			when = setting.Value
		}
	}
	return revision, modified, when
}
