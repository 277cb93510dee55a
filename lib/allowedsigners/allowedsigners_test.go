// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package allowedsigners

import (
	"strings"
	"testing"
)

const testListing = `# team signing keys
alice ssh-ed25519 AAAA1 alice@example.com

bob ssh-ed25519 AAAA2
malformed-line
carol ssh-rsa AAAA1 legacy key
`

func TestFindPrincipal(t *testing.T) {
	cases := []struct {
		keyType, keyData string
		wantPrincipal    string
		wantFound        bool
	}{
		{"ssh-ed25519", "AAAA1", "alice", true},
		{"ssh-ed25519", "AAAA2", "bob", true},
		{"ssh-rsa", "AAAA1", "carol", true},
		{"ssh-ed25519", "AAAA3", "", false},
		{"ssh-rsa", "AAAA2", "", false},
	}

	for _, c := range cases {
		principal, found, err := FindPrincipal(strings.NewReader(testListing), c.keyType, c.keyData)
		if err != nil {
			t.Fatalf("FindPrincipal(%s, %s): %v", c.keyType, c.keyData, err)
		}
		if found != c.wantFound || principal != c.wantPrincipal {
			t.Errorf("FindPrincipal(%s, %s) = (%q, %v), want (%q, %v)",
				c.keyType, c.keyData, principal, found, c.wantPrincipal, c.wantFound)
		}
	}
}

func TestFindPrincipalFirstMatchWins(t *testing.T) {
	listing := "first ssh-ed25519 AAAA\nsecond ssh-ed25519 AAAA\n"
	principal, found, err := FindPrincipal(strings.NewReader(listing), "ssh-ed25519", "AAAA")
	if err != nil {
		t.Fatalf("FindPrincipal: %v", err)
	}
	if !found || principal != "first" {
		t.Errorf("got (%q, %v), want (first, true)", principal, found)
	}
}

func TestFirstPrincipal(t *testing.T) {
	principal, found, err := FirstPrincipal(strings.NewReader(testListing))
	if err != nil {
		t.Fatalf("FirstPrincipal: %v", err)
	}
	if !found || principal != "alice" {
		t.Errorf("got (%q, %v), want (alice, true)", principal, found)
	}
}

func TestFirstPrincipalSkipsCommentsAndMalformed(t *testing.T) {
	listing := "# comment\n\nshort line\nbob ssh-ed25519 AAAA2\n"
	principal, found, err := FirstPrincipal(strings.NewReader(listing))
	if err != nil {
		t.Fatalf("FirstPrincipal: %v", err)
	}
	if !found || principal != "bob" {
		t.Errorf("got (%q, %v), want (bob, true)", principal, found)
	}
}

func TestFirstPrincipalEmptyListing(t *testing.T) {
	_, found, err := FirstPrincipal(strings.NewReader("# only a comment\n"))
	if err != nil {
		t.Fatalf("FirstPrincipal: %v", err)
	}
	if found {
		t.Error("found a principal in a comment-only listing")
	}
}
