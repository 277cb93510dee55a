// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package sshwire implements the length-prefixed string primitive of
// the SSH wire format (RFC 4251 §5): a 4-byte big-endian length
// followed by that many bytes.
//
// Every parser in this repository that walks attacker-controlled
// bytes (the SSHSIG envelope, the embedded signature pair, the public
// key material) goes through [DecodeString], so bounds validation is
// enforced in exactly one place.
package sshwire
