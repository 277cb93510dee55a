// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/enveng-tools/sshsign/lib/sigkey"
	"github.com/enveng-tools/sshsign/lib/sshsig"
)

// runSign signs the message and writes the armored signature to
// <data source>.sig. When the message arrives on standard input it is
// first captured to a temporary file so the .sig path has a concrete
// base, mirroring what git expects from ssh-keygen.
func (d *Dispatcher) runSign(inv *invocation) error {
	if inv.keyFile == "" {
		return fmt.Errorf("key file (-f) required for signing")
	}

	// Git configures the public key file as the signing key; the
	// private key sits next to it.
	keyFile := strings.TrimSuffix(inv.keyFile, ".pub")

	key, err := sigkey.LoadPrivateKey(keyFile)
	if err != nil {
		return err
	}
	scheme, err := sigkey.LookupScheme(key.Algorithm)
	if err != nil {
		return err
	}

	messageFile := inv.messageFile
	if messageFile == "" {
		captured, err := d.captureStdin()
		if err != nil {
			return err
		}
		messageFile = captured
	}

	message, err := os.ReadFile(messageFile)
	if err != nil {
		return fmt.Errorf("reading message: %w", err)
	}

	namespace := d.namespaceOrDefault(inv)
	preimage, err := sshsig.BuildPreimage(namespace, sshsig.SignHashAlgorithm, message)
	if err != nil {
		return err
	}

	rawSignature, err := scheme.Sign(key.Signer, preimage)
	if err != nil {
		return err
	}

	signatureData := sshsig.EncodeSignatureData(key.Algorithm, rawSignature)
	blob := sshsig.Build(key.PublicWire, namespace, sshsig.SignHashAlgorithm, signatureData)

	signatureFile := messageFile + ".sig"
	if err := os.WriteFile(signatureFile, sshsig.Armor(blob), 0644); err != nil {
		return fmt.Errorf("writing signature: %w", err)
	}

	d.Logger.Info("signed message",
		"namespace", namespace,
		"algorithm", key.Algorithm,
		"signature_file", signatureFile)
	return nil
}

// captureStdin writes standard input to a temporary file and returns
// its path. The file is not removed: the caller's contract is that
// the signature lands next to the data it covers.
func (d *Dispatcher) captureStdin() (string, error) {
	if d.StdinIsTerminal != nil && d.StdinIsTerminal() {
		fmt.Fprintln(d.Stderr, "sshsign: reading message from standard input (end with Ctrl-D)")
	}

	tmp, err := os.CreateTemp("", "sshsign-message-")
	if err != nil {
		return "", fmt.Errorf("creating message buffer: %w", err)
	}
	defer tmp.Close()

	if _, err := tmp.ReadFrom(d.Stdin); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("capturing stdin: %w", err)
	}
	return tmp.Name(), nil
}
