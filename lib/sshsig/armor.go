// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sshsig

import (
	"bytes"
	"encoding/pem"
	"errors"
	"fmt"
)

// pemType is the PEM block type of an armored SSH signature.
const pemType = "SSH SIGNATURE"

// ErrArmorFormat is returned when the begin/end markers are missing or
// mismatched, or the base64 body does not decode.
var ErrArmorFormat = errors.New("sshsig: invalid signature armor")

// Armor wraps a raw envelope in the textual form git and ssh-keygen
// exchange: BEGIN/END SSH SIGNATURE markers around base64.
func Armor(blob []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: pemType, Bytes: blob})
}

// beginMarker is the first line of an armored signature. The file
// must start with it; pem.Decode alone would skip leading junk.
var beginMarker = []byte("-----BEGIN " + pemType + "-----")

// Unarmor strips the markers and decodes the base64 body. The input
// must begin with the BEGIN marker, modulo surrounding whitespace. No
// line length constraint is enforced on read; a single long base64
// line and the 76-column wrapping ssh-keygen produces are both
// accepted.
func Unarmor(armored []byte) ([]byte, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(armored), beginMarker) {
		return nil, fmt.Errorf("%w: missing BEGIN marker", ErrArmorFormat)
	}
	block, rest := pem.Decode(armored)
	if block == nil {
		return nil, ErrArmorFormat
	}
	if block.Type != pemType {
		return nil, fmt.Errorf("%w: unexpected block type %q", ErrArmorFormat, block.Type)
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return nil, fmt.Errorf("%w: trailing data after END marker", ErrArmorFormat)
	}
	return block.Bytes, nil
}
