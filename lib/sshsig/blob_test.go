// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sshsig

import (
	"bytes"
	"errors"
	"testing"

	"github.com/enveng-tools/sshsign/lib/sshwire"
)

// testEnvelope builds one valid envelope with recognizable fields.
func testEnvelope(t *testing.T) ([]byte, *Blob) {
	t.Helper()
	want := &Blob{
		PublicKey:     append(sshwire.EncodeString([]byte("ssh-ed25519")), sshwire.EncodeString(bytes.Repeat([]byte{0x42}, 32))...),
		Namespace:     "git",
		Reserved:      []byte{},
		HashAlgorithm: HashSHA512,
		SignatureData: EncodeSignatureData("ssh-ed25519", bytes.Repeat([]byte{0x7F}, 64)),
	}
	blob := Build(want.PublicKey, want.Namespace, want.HashAlgorithm, want.SignatureData)
	return blob, want
}

func TestBuildParseRoundTrip(t *testing.T) {
	for _, hashAlgorithm := range []string{HashSHA256, HashSHA512} {
		publicKey := sshwire.EncodeString([]byte("ssh-ed25519"))
		signatureData := EncodeSignatureData("ssh-ed25519", bytes.Repeat([]byte{0x01}, 64))

		blob := Build(publicKey, "git", hashAlgorithm, signatureData)
		parsed, err := Parse(blob)
		if err != nil {
			t.Fatalf("Parse(%s): %v", hashAlgorithm, err)
		}

		if !bytes.Equal(parsed.PublicKey, publicKey) {
			t.Errorf("PublicKey mismatch")
		}
		if parsed.Namespace != "git" {
			t.Errorf("Namespace = %q, want git", parsed.Namespace)
		}
		if len(parsed.Reserved) != 0 {
			t.Errorf("Reserved = %v, want empty", parsed.Reserved)
		}
		if parsed.HashAlgorithm != hashAlgorithm {
			t.Errorf("HashAlgorithm = %q, want %q", parsed.HashAlgorithm, hashAlgorithm)
		}
		if !bytes.Equal(parsed.SignatureData, signatureData) {
			t.Errorf("SignatureData mismatch")
		}
	}
}

func TestParseBadMagic(t *testing.T) {
	blob, _ := testEnvelope(t)
	blob[0] = 'X'

	_, err := Parse(blob)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("Parse with corrupted magic: got %v, want ErrBadMagic", err)
	}

	if _, err := Parse(nil); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Parse(nil): got %v, want ErrBadMagic", err)
	}
	if _, err := Parse([]byte("SSH")); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Parse of short prefix: got %v, want ErrBadMagic", err)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	blob, _ := testEnvelope(t)
	blob[9] = 2 // version bytes are blob[6:10], big-endian

	_, err := Parse(blob)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Parse with version 2: got %v, want ErrUnsupportedVersion", err)
	}
}

func TestParseTruncatedAtEveryOffset(t *testing.T) {
	blob, _ := testEnvelope(t)

	// Every proper prefix must fail with a typed structural error,
	// never an out-of-bounds access.
	for cut := 0; cut < len(blob); cut++ {
		_, err := Parse(blob[:cut])
		if err == nil {
			t.Fatalf("Parse of %d-byte prefix unexpectedly succeeded", cut)
		}
		if !errors.Is(err, sshwire.ErrTruncated) && !errors.Is(err, ErrBadMagic) && !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("Parse of %d-byte prefix: unexpected error %v", cut, err)
		}
	}
}

func TestParseInvalidEncoding(t *testing.T) {
	// Namespace containing an invalid UTF-8 sequence.
	blob := Build(sshwire.EncodeString([]byte("ssh-ed25519")), string([]byte{0xFF, 0xFE}), HashSHA512, EncodeSignatureData("ssh-ed25519", make([]byte, 64)))

	_, err := Parse(blob)
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Parse with non-UTF8 namespace: got %v, want ErrInvalidEncoding", err)
	}
}

func TestSignatureDataRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAB}, 64)
	encoded := EncodeSignatureData("ssh-ed25519", raw)

	algorithm, decoded, err := DecodeSignatureData(encoded)
	if err != nil {
		t.Fatalf("DecodeSignatureData: %v", err)
	}
	if algorithm != "ssh-ed25519" {
		t.Errorf("algorithm = %q, want ssh-ed25519", algorithm)
	}
	if !bytes.Equal(decoded, raw) {
		t.Errorf("raw signature mismatch")
	}
}

func TestDecodeSignatureDataTruncated(t *testing.T) {
	encoded := EncodeSignatureData("ssh-ed25519", make([]byte, 64))
	for cut := 0; cut < len(encoded); cut++ {
		_, _, err := DecodeSignatureData(encoded[:cut])
		if !errors.Is(err, sshwire.ErrTruncated) {
			t.Errorf("DecodeSignatureData of %d-byte prefix: got %v, want ErrTruncated", cut, err)
		}
	}
}
