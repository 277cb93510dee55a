// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/enveng-tools/sshsign/lib/config"
	"github.com/enveng-tools/sshsign/lib/keytool"
	"github.com/enveng-tools/sshsign/lib/version"
)

// Operation-level failures. Each maps to exit code 1 with one line on
// the error stream; none of them crash the process.
var (
	ErrPrincipalNotFound  = errors.New("public key not found in allowed signers")
	ErrNamespaceMismatch  = errors.New("signature namespace does not match")
	ErrIdentityMismatch   = errors.New("signer principal does not match requested identity")
	ErrVerificationFailed = errors.New("signature verification failed")
)

// Dispatcher classifies an invocation and drives the signing,
// verification, and delegated key-management paths. All dependencies
// are explicit fields so tests can substitute streams and
// configuration; the logger is an injected capability, not a hidden
// side channel.
type Dispatcher struct {
	Config  *config.Config
	Logger  *slog.Logger
	Keytool *keytool.Tool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether Stdin is an interactive
	// terminal. Used only to print a hint before blocking on
	// terminal input.
	StdinIsTerminal func() bool
}

// Run executes one invocation and returns the process exit code:
// 0 on success, 1 on any failure.
func (d *Dispatcher) Run(args []string) int {
	inv, err := parseInvocation(args)
	if err != nil {
		fmt.Fprintf(d.Stderr, "sshsign: %v\n", err)
		d.printUsage()
		return 1
	}

	switch inv.kind {
	case opHelp:
		d.printUsage()
		return 0
	case opVersion:
		fmt.Fprintf(d.Stdout, "sshsign %s\n", version.String())
		return 0
	}

	var opErr error
	switch inv.kind {
	case opSign:
		opErr = d.runSign(inv)
	case opVerify:
		opErr = d.runVerify(inv)
	case opFindPrincipals:
		opErr = d.runFindPrincipals(inv)
	case opCheckNoValidate:
		opErr = d.runCheckNoValidate(inv)
	case opKeygen:
		opErr = d.runKeygen(inv)
	case opPublicKey:
		opErr = d.runPublicKey(inv)
	case opFingerprint:
		opErr = d.runFingerprint(inv)
	}

	if opErr != nil {
		fmt.Fprintf(d.Stderr, "sshsign: %v\n", opErr)
		return 1
	}
	return 0
}

// runKeygen delegates key generation to dropbearkey.
func (d *Dispatcher) runKeygen(inv *invocation) error {
	d.Logger.Info("generating key", "type", inv.keyType, "file", inv.keyFile)
	return d.Keytool.Generate(context.Background(), inv.keyType, inv.keyFile, keytool.GenerateOptions{
		Bits:    inv.bits,
		Comment: inv.comment,
	})
}

// runPublicKey delegates public key extraction to dropbearkey.
func (d *Dispatcher) runPublicKey(inv *invocation) error {
	if inv.keyFile == "" {
		return fmt.Errorf("key file (-f) required")
	}
	line, err := d.Keytool.PublicKeyLine(context.Background(), inv.keyFile)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.Stdout, line)
	return nil
}

// runFingerprint delegates fingerprint display to dropbearkey.
func (d *Dispatcher) runFingerprint(inv *invocation) error {
	if inv.keyFile == "" {
		return fmt.Errorf("key file (-f) required")
	}
	line, err := d.Keytool.Fingerprint(context.Background(), inv.keyFile)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.Stdout, line)
	return nil
}

// readMessage resolves the message bytes for sign and verify: the
// positional file when given, otherwise all of standard input.
func (d *Dispatcher) readMessage(inv *invocation) ([]byte, error) {
	if inv.messageFile != "" {
		data, err := os.ReadFile(inv.messageFile)
		if err != nil {
			return nil, fmt.Errorf("reading message: %w", err)
		}
		return data, nil
	}

	if d.StdinIsTerminal != nil && d.StdinIsTerminal() {
		fmt.Fprintln(d.Stderr, "sshsign: reading message from standard input (end with Ctrl-D)")
	}
	data, err := io.ReadAll(d.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading message from stdin: %w", err)
	}
	return data, nil
}

// namespaceOrDefault resolves the effective namespace for signing: an
// explicit -n wins over the configured default.
func (d *Dispatcher) namespaceOrDefault(inv *invocation) string {
	if inv.namespace != "" {
		return inv.namespace
	}
	return d.Config.DefaultNamespace
}

func (d *Dispatcher) printUsage() {
	fmt.Fprintf(d.Stderr, `Usage: sshsign [options] [file]

SSH signing (ssh-keygen -Y compatible):
  -Y sign             Sign data (requires -f <private key>)
  -Y verify           Verify a signature (-s <sig>, -f <allowed signers>)
  -Y find-principals  Print the principal from an allowed-signers file
  -Y check-novalidate Check signature structure without verification
  -n namespace        Signature namespace (default from config, "git")
  -s file             Signature file
  -I identity         Required signer principal for verify
  -f file             Key file (sign) or allowed-signers file (verify)

Key management (delegated to dropbearkey):
  -t type             Generate a key of this type (with -f)
  -b bits             Key size in bits
  -C comment          Key comment
  -y                  Print the public key for a private key (-f)
  -l, -p              Print the key fingerprint (-f)

Other:
  -V                  Print version
  -h                  Show this help

The data file is a positional argument; standard input is used when
it is omitted.
`)
}
