// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package allowedsigners resolves public keys to principal identities
// using the allowed-signers listing format git consumes
// (gpg.ssh.allowedSignersFile): one record per line,
//
//	principal key-type key-data [trailing tokens ignored]
//
// Blank lines and lines starting with # are skipped. Line order is
// significant for FirstPrincipal (first record wins); FindPrincipal
// returns the first exact key match.
package allowedsigners

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Entry is one well-formed allowed-signers record.
type Entry struct {
	Principal string
	KeyType   string
	KeyData   string
}

// parseLine splits one listing line into an Entry. Returns false for
// comments, blank lines, and lines with fewer than three tokens.
func parseLine(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 3 {
		return Entry{}, false
	}
	return Entry{Principal: fields[0], KeyType: fields[1], KeyData: fields[2]}, true
}

// FindPrincipal scans the listing for the first record whose key type
// and base64 key data both match exactly. Returns the matched
// principal, or ok=false when no record matches.
func FindPrincipal(listing io.Reader, keyType, keyDataBase64 string) (string, bool, error) {
	scanner := bufio.NewScanner(listing)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if entry.KeyType == keyType && entry.KeyData == keyDataBase64 {
			return entry.Principal, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("allowedsigners: reading listing: %w", err)
	}
	return "", false, nil
}

// FirstPrincipal returns the principal of the first well-formed,
// non-comment record, regardless of key. This is the narrower
// contract the find-principals operation needs: it identifies who the
// listing is about, not who signed a particular blob.
func FirstPrincipal(listing io.Reader) (string, bool, error) {
	scanner := bufio.NewScanner(listing)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if entry, ok := parseLine(scanner.Text()); ok {
			return entry.Principal, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("allowedsigners: reading listing: %w", err)
	}
	return "", false, nil
}
