// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/enveng-tools/sshsign/lib/allowedsigners"
	"github.com/enveng-tools/sshsign/lib/sigkey"
	"github.com/enveng-tools/sshsign/lib/sshsig"
)

// readSignatureBlob loads and de-armors the -s file and parses the
// envelope. Shared by verify and check-novalidate.
func (d *Dispatcher) readSignatureBlob(inv *invocation) (*sshsig.Blob, error) {
	if inv.signatureFile == "" {
		return nil, fmt.Errorf("signature file (-s) required")
	}
	armored, err := os.ReadFile(inv.signatureFile)
	if err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	raw, err := sshsig.Unarmor(armored)
	if err != nil {
		return nil, err
	}
	return sshsig.Parse(raw)
}

// runVerify performs full signature verification: structural checks,
// optional namespace and principal filters, then the cryptographic
// check over a preimage recomputed from the message bytes. The
// preimage uses the envelope's own namespace and hash algorithm;
// command-line filters only reject, they never substitute.
func (d *Dispatcher) runVerify(inv *invocation) error {
	blob, err := d.readSignatureBlob(inv)
	if err != nil {
		return err
	}

	if inv.verifyTime != "" {
		d.Logger.Debug("ignoring verify-time option (no expiry model)", "verify_time", inv.verifyTime)
	}

	if inv.namespace != "" && blob.Namespace != inv.namespace {
		return fmt.Errorf("%w: signature has %q, want %q", ErrNamespaceMismatch, blob.Namespace, inv.namespace)
	}

	allowedSignersFile := inv.keyFile
	if allowedSignersFile == "" {
		allowedSignersFile = d.Config.AllowedSignersFile
	}
	if allowedSignersFile != "" {
		principal, err := d.resolvePrincipal(allowedSignersFile, blob)
		if err != nil {
			return err
		}
		if inv.identity != "" && principal != inv.identity {
			return fmt.Errorf("%w: signed by %q, want %q", ErrIdentityMismatch, principal, inv.identity)
		}
		d.Logger.Info("resolved signer", "principal", principal)
	}

	algorithm, rawSignature, err := sshsig.DecodeSignatureData(blob.SignatureData)
	if err != nil {
		return err
	}
	scheme, err := sigkey.LookupScheme(algorithm)
	if err != nil {
		return err
	}

	message, err := d.readMessage(inv)
	if err != nil {
		return err
	}
	preimage, err := sshsig.BuildPreimage(blob.Namespace, blob.HashAlgorithm, message)
	if err != nil {
		return err
	}

	if !scheme.Verify(blob.PublicKey, rawSignature, preimage) {
		return ErrVerificationFailed
	}

	d.Logger.Info("signature verified", "namespace", blob.Namespace, "algorithm", algorithm)
	return nil
}

// resolvePrincipal maps the envelope's embedded public key to a
// principal via the allowed-signers listing.
func (d *Dispatcher) resolvePrincipal(listingPath string, blob *sshsig.Blob) (string, error) {
	record, err := sigkey.RecordFromWire(blob.PublicKey)
	if err != nil {
		return "", err
	}

	listing, err := os.Open(listingPath)
	if err != nil {
		return "", fmt.Errorf("reading allowed signers: %w", err)
	}
	defer listing.Close()

	principal, found, err := allowedsigners.FindPrincipal(listing, record.Type, record.Base64Material())
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w (%s)", ErrPrincipalNotFound, record.Type)
	}
	return principal, nil
}

// runFindPrincipals prints the first principal of the allowed-signers
// listing. The signature and namespace arguments git passes alongside
// are accepted but unused; this operation identifies who the listing
// is about, nothing more.
func (d *Dispatcher) runFindPrincipals(inv *invocation) error {
	if inv.keyFile == "" {
		return fmt.Errorf("allowed signers file (-f) required")
	}

	listing, err := os.Open(inv.keyFile)
	if err != nil {
		return fmt.Errorf("reading allowed signers: %w", err)
	}
	defer listing.Close()

	principal, found, err := allowedsigners.FirstPrincipal(listing)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintln(d.Stdout, principal)
	}
	// A listing with no principals is not an error: there is simply
	// nothing to print.
	return nil
}

// runCheckNoValidate performs the structural half of verify and
// skips the signature engine: armor well-formed, blob
// parses, signature data splits, namespace filter satisfied. It
// answers "is this well-formed", not "is this authentic".
func (d *Dispatcher) runCheckNoValidate(inv *invocation) error {
	blob, err := d.readSignatureBlob(inv)
	if err != nil {
		return err
	}

	if inv.namespace != "" && blob.Namespace != inv.namespace {
		return fmt.Errorf("%w: signature has %q, want %q", ErrNamespaceMismatch, blob.Namespace, inv.namespace)
	}

	if _, _, err := sshsig.DecodeSignatureData(blob.SignatureData); err != nil {
		return err
	}

	d.Logger.Info("signature structure valid", "namespace", blob.Namespace)
	return nil
}
