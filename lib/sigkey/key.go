// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sigkey

import (
	"crypto"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/enveng-tools/sshsign/lib/sshwire"
)

// Errors returned by key loading and record parsing.
var (
	ErrUnsupportedKeyType = errors.New("sigkey: unsupported key type")
	ErrKeyEncrypted       = errors.New("sigkey: private key is passphrase-protected")
	ErrMalformedRecord    = errors.New("sigkey: malformed public key record")
)

// PrivateKey is a loaded signing key bound to its scheme.
type PrivateKey struct {
	// Algorithm is the SSH algorithm name ("ssh-ed25519").
	Algorithm string

	// Signer is the underlying key. The scheme named by Algorithm
	// knows its concrete type.
	Signer crypto.Signer

	// PublicWire is the SSH wire encoding of the corresponding
	// public key, as embedded in SSHSIG envelopes.
	PublicWire []byte
}

// LoadPrivateKey reads an OpenSSH-format private key file. Only
// unencrypted Ed25519 keys are supported: a passphrase-protected key
// fails with ErrKeyEncrypted (this tool never prompts), any other key
// type fails with ErrUnsupportedKeyType.
func LoadPrivateKey(path string) (*PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sigkey: reading private key: %w", err)
	}

	parsed, err := ssh.ParseRawPrivateKey(raw)
	if err != nil {
		var passphraseErr *ssh.PassphraseMissingError
		if errors.As(err, &passphraseErr) {
			return nil, fmt.Errorf("%w: %s", ErrKeyEncrypted, path)
		}
		return nil, fmt.Errorf("sigkey: parsing private key %s: %w", path, err)
	}

	var key ed25519.PrivateKey
	switch k := parsed.(type) {
	case ed25519.PrivateKey:
		key = k
	case *ed25519.PrivateKey:
		key = *k
	default:
		return nil, fmt.Errorf("%w: %T (only ssh-ed25519 is supported)", ErrUnsupportedKeyType, parsed)
	}

	sshPublic, err := ssh.NewPublicKey(key.Public())
	if err != nil {
		return nil, fmt.Errorf("sigkey: encoding public key: %w", err)
	}

	return &PrivateKey{
		Algorithm:  sshPublic.Type(),
		Signer:     key,
		PublicWire: sshPublic.Marshal(),
	}, nil
}

// PublicKeyRecord is a public key as it appears in a one-line
// authorized-keys style record or inside an SSHSIG envelope.
// Immutable once constructed.
type PublicKeyRecord struct {
	// Type is the SSH algorithm name from the key material
	// ("ssh-ed25519").
	Type string

	// Material is the SSH wire-encoded key: a length-prefixed type
	// string followed by the key-specific payload.
	Material []byte
}

// ParseAuthorizedLine parses a single-line public key record of the
// form "key-type base64-material [comment]". The declared type must
// match the type embedded in the wire material.
func ParseAuthorizedLine(line string) (*PublicKeyRecord, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: want \"key-type base64 [comment]\"", ErrMalformedRecord)
	}

	material, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrMalformedRecord, err)
	}

	record, err := RecordFromWire(material)
	if err != nil {
		return nil, err
	}
	if record.Type != fields[0] {
		return nil, fmt.Errorf("%w: declared type %q but material encodes %q", ErrMalformedRecord, fields[0], record.Type)
	}
	return record, nil
}

// RecordFromWire constructs a record from SSH wire-encoded key
// material, as found in an SSHSIG envelope's public key field.
func RecordFromWire(material []byte) (*PublicKeyRecord, error) {
	keyType, _, err := sshwire.DecodeString(material, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(keyType) == 0 {
		return nil, fmt.Errorf("%w: empty key type", ErrMalformedRecord)
	}

	copied := make([]byte, len(material))
	copy(copied, material)
	return &PublicKeyRecord{Type: string(keyType), Material: copied}, nil
}

// Base64Material returns the record's wire material in the base64 form
// used by authorized-keys lines and allowed-signers listings.
func (r *PublicKeyRecord) Base64Material() string {
	return base64.StdEncoding.EncodeToString(r.Material)
}
