// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Command sshsign is an ssh-keygen-compatible SSH signature tool for
// systems that ship Dropbear instead of OpenSSH.
//
// Git's SSH commit and tag signing shells out to ssh-keygen for four
// operations: -Y sign, -Y verify, -Y find-principals, and
// -Y check-novalidate. Dropbear has no equivalent, so sshsign
// implements the SSHSIG detached signature format itself (lib/sshsig,
// lib/sigkey) and delegates only key management (generation, public
// key extraction, fingerprints) to dropbearkey (lib/keytool).
//
// Point git at it:
//
//	git config gpg.format ssh
//	git config gpg.ssh.program sshsign
//	git config user.signingkey ~/.ssh/id_ed25519.pub
//
// Exit codes are 0 for success and 1 for any failure, matching what
// git expects from ssh-keygen.
package main
