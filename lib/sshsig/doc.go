// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package sshsig implements the SSHSIG detached signature format
// (openssh-portable PROTOCOL.sshsig): the armored envelope that git
// writes for SSH-signed commits and tags.
//
// # Wire format
//
// An envelope is:
//
//	byte[6]  MAGIC_PREAMBLE "SSHSIG"
//	uint32   SIG_VERSION    (1)
//	string   publickey      (SSH wire-encoded key material)
//	string   namespace
//	string   reserved       (empty)
//	string   hash_algorithm ("sha256" | "sha512")
//	string   signature      (string algorithm, string raw signature)
//
// where "string" is the 4-byte big-endian length-prefixed encoding
// from lib/sshwire. The signed preimage replays the same layout minus
// the version and public key, with the message digest in place of the
// signature; [BuildPreimage] is its single constructor.
//
// [Parse] is total over attacker-controlled input: any malformed byte
// sequence yields a typed error, never a panic.
package sshsig
