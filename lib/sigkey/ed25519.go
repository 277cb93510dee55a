// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sigkey

import (
	"crypto"
	"crypto/ed25519"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// AlgorithmEd25519 is the SSH name of the one scheme this tool ships.
const AlgorithmEd25519 = "ssh-ed25519"

func init() {
	RegisterScheme(ed25519Scheme{})
}

// ed25519Scheme implements Scheme for ssh-ed25519. Signatures are the
// fixed 64-byte Ed25519 form with no SK flags or counter.
type ed25519Scheme struct{}

func (ed25519Scheme) Name() string { return AlgorithmEd25519 }

func (ed25519Scheme) Sign(signer crypto.Signer, preimage []byte) ([]byte, error) {
	key, ok := signer.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an Ed25519 key", ErrUnsupportedKeyType, signer)
	}
	return ed25519.Sign(key, preimage), nil
}

func (ed25519Scheme) Verify(keyMaterial, signature, preimage []byte) bool {
	parsed, err := ssh.ParsePublicKey(keyMaterial)
	if err != nil {
		return false
	}
	cryptoKey, ok := parsed.(ssh.CryptoPublicKey)
	if !ok {
		return false
	}
	publicKey, ok := cryptoKey.CryptoPublicKey().(ed25519.PublicKey)
	if !ok || len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey, preimage, signature)
}
