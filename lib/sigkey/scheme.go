// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sigkey

import (
	"crypto"
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedAlgorithm is returned by Lookup for an algorithm name
// with no registered scheme.
var ErrUnsupportedAlgorithm = errors.New("sigkey: unsupported signature algorithm")

// Scheme is one signature algorithm: the capability pair a SSHSIG
// envelope's algorithm name dispatches to. The blob codec and the
// operation dispatcher stay scheme-agnostic; adding an algorithm means
// registering another Scheme, nothing else.
type Scheme interface {
	// Name is the SSH algorithm name ("ssh-ed25519").
	Name() string

	// Sign produces a deterministic signature over the preimage.
	// The signer must be the concrete key type this scheme expects.
	Sign(signer crypto.Signer, preimage []byte) ([]byte, error)

	// Verify checks a signature against the preimage using SSH
	// wire-encoded public key material. Malformed or undersized
	// material verifies false; Verify never panics and never
	// returns an error. Any internal failure is a failed
	// verification, not a crash.
	Verify(keyMaterial, signature, preimage []byte) bool
}

var schemes = map[string]Scheme{}

// RegisterScheme adds a scheme to the registry. Duplicate names are a
// programming error and panic at init time.
func RegisterScheme(s Scheme) {
	if _, exists := schemes[s.Name()]; exists {
		panic("sigkey: duplicate scheme " + s.Name())
	}
	schemes[s.Name()] = s
}

// LookupScheme resolves an algorithm name to its scheme.
func LookupScheme(name string) (Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedAlgorithm, name, SchemeNames())
	}
	return s, nil
}

// SchemeNames lists registered algorithm names in sorted order.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
