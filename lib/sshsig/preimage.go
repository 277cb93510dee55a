// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sshsig

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"github.com/enveng-tools/sshsign/lib/sshwire"
)

// Hash algorithm names permitted by PROTOCOL.sshsig.
const (
	HashSHA256 = "sha256"
	HashSHA512 = "sha512"
)

// SignHashAlgorithm is the digest used on the sign path. Verify
// accepts either supported algorithm from the envelope; the signer
// always picks the stronger one. Only the value embedded in the blob
// matters to a verifier.
const SignHashAlgorithm = HashSHA512

// ErrUnsupportedHash is returned for a hash algorithm name other than
// sha256 or sha512.
var ErrUnsupportedHash = errors.New("sshsig: unsupported hash algorithm")

// newHash maps an algorithm name to its hash constructor.
func newHash(algorithm string) (func() hash.Hash, error) {
	switch algorithm {
	case HashSHA256:
		return sha256.New, nil
	case HashSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHash, algorithm)
	}
}

// BuildPreimage constructs the exact byte sequence that gets signed:
//
//	byte[6]  "SSHSIG"
//	string   namespace
//	string   reserved (empty)
//	string   hash algorithm name
//	string   H(message)
//
// This is the single source of truth for what bytes are signed. The
// message is always hashed here, never trusted as pre-hashed, so
// signer and verifier agree exactly when called with the same
// (namespace, hashAlgorithm, message).
func BuildPreimage(namespace, hashAlgorithm string, message []byte) ([]byte, error) {
	constructor, err := newHash(hashAlgorithm)
	if err != nil {
		return nil, err
	}

	digester := constructor()
	digester.Write(message)
	digest := digester.Sum(nil)

	var out bytes.Buffer
	out.Write(magic)
	out.Write(sshwire.EncodeString([]byte(namespace)))
	out.Write(sshwire.EncodeString(nil)) // reserved
	out.Write(sshwire.EncodeString([]byte(hashAlgorithm)))
	out.Write(sshwire.EncodeString(digest))
	return out.Bytes(), nil
}
