// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sshsig

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/enveng-tools/sshsign/lib/sshwire"
)

// magic is the 6-byte preamble of every SSHSIG envelope.
var magic = []byte("SSHSIG")

// Version is the only envelope version this package produces or
// accepts (PROTOCOL.sshsig SIG_VERSION).
const Version = 1

// Errors returned by Parse and DecodeSignatureData. Truncation
// surfaces as sshwire.ErrTruncated so callers can match every short
// read with a single errors.Is check.
var (
	ErrBadMagic           = errors.New("sshsig: bad magic preamble")
	ErrUnsupportedVersion = errors.New("sshsig: unsupported signature version")
	ErrInvalidEncoding    = errors.New("sshsig: text field is not valid UTF-8")
)

// Blob is a parsed SSHSIG envelope. Field order matches the wire
// layout; none may be reordered or omitted.
type Blob struct {
	// PublicKey is the signer's public key in SSH wire form: a
	// length-prefixed key type string followed by the key-specific
	// material. It is kept opaque here; lib/sigkey interprets it.
	PublicKey []byte

	// Namespace scopes the signature to one use ("git" for commit
	// and tag signing). Verifiers reject cross-namespace signatures.
	Namespace string

	// Reserved is always empty in version 1 envelopes but the field
	// itself is always present on the wire.
	Reserved []byte

	// HashAlgorithm names the digest applied to the message before
	// signing: "sha256" or "sha512".
	HashAlgorithm string

	// SignatureData is the wire-encoded pair (algorithm name, raw
	// signature bytes). DecodeSignatureData splits it.
	SignatureData []byte
}

// Build serializes an envelope from its fields. Pure function, no
// I/O; the inverse of Parse.
func Build(publicKeyWire []byte, namespace, hashAlgorithm string, signatureData []byte) []byte {
	var out bytes.Buffer
	out.Write(magic)

	var version [4]byte
	binary.BigEndian.PutUint32(version[:], Version)
	out.Write(version[:])

	out.Write(sshwire.EncodeString(publicKeyWire))
	out.Write(sshwire.EncodeString([]byte(namespace)))
	out.Write(sshwire.EncodeString(nil)) // reserved
	out.Write(sshwire.EncodeString([]byte(hashAlgorithm)))
	out.Write(sshwire.EncodeString(signatureData))
	return out.Bytes()
}

// Parse decodes an SSHSIG envelope. It never panics on malformed
// input: every defect maps to ErrBadMagic, ErrUnsupportedVersion,
// ErrInvalidEncoding, or sshwire.ErrTruncated.
func Parse(blob []byte) (*Blob, error) {
	if len(blob) < len(magic) || !bytes.Equal(blob[:len(magic)], magic) {
		return nil, ErrBadMagic
	}
	offset := len(magic)

	version, offset, err := sshwire.DecodeUint32(blob, offset)
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: got version %d, want %d", ErrUnsupportedVersion, version, Version)
	}

	publicKey, offset, err := sshwire.DecodeString(blob, offset)
	if err != nil {
		return nil, err
	}
	namespace, offset, err := sshwire.DecodeString(blob, offset)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(namespace) {
		return nil, fmt.Errorf("%w: namespace", ErrInvalidEncoding)
	}
	reserved, offset, err := sshwire.DecodeString(blob, offset)
	if err != nil {
		return nil, err
	}
	hashAlgorithm, offset, err := sshwire.DecodeString(blob, offset)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(hashAlgorithm) {
		return nil, fmt.Errorf("%w: hash algorithm", ErrInvalidEncoding)
	}
	signatureData, _, err := sshwire.DecodeString(blob, offset)
	if err != nil {
		return nil, err
	}

	return &Blob{
		PublicKey:     publicKey,
		Namespace:     string(namespace),
		Reserved:      reserved,
		HashAlgorithm: string(hashAlgorithm),
		SignatureData: signatureData,
	}, nil
}

// EncodeSignatureData wire-encodes the (algorithm name, raw
// signature) pair that goes into the envelope's signature field.
func EncodeSignatureData(algorithm string, rawSignature []byte) []byte {
	return append(sshwire.EncodeString([]byte(algorithm)), sshwire.EncodeString(rawSignature)...)
}

// DecodeSignatureData splits the envelope's signature field back into
// the algorithm name and the raw signature bytes.
func DecodeSignatureData(signatureData []byte) (string, []byte, error) {
	algorithm, offset, err := sshwire.DecodeString(signatureData, 0)
	if err != nil {
		return "", nil, err
	}
	if !utf8.Valid(algorithm) {
		return "", nil, fmt.Errorf("%w: signature algorithm", ErrInvalidEncoding)
	}
	rawSignature, _, err := sshwire.DecodeString(signatureData, offset)
	if err != nil {
		return "", nil, err
	}
	return string(algorithm), rawSignature, nil
}
