// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package sigkey loads signing keys and performs the cryptographic
// half of SSHSIG: producing and checking signatures over a preimage
// built by lib/sshsig.
//
// Private keys are OpenSSH-format files parsed with
// golang.org/x/crypto/ssh. Passphrase-protected keys fail closed with
// [ErrKeyEncrypted]; there is no prompting path.
//
// Algorithms are a registry of [Scheme] values keyed by SSH algorithm
// name. One scheme is registered, ssh-ed25519. The envelope codec and
// the command dispatcher never mention a concrete algorithm; they
// resolve the name read from the envelope through [LookupScheme].
package sigkey
