// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package sshwire

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned when a buffer ends before a complete
// length-prefixed field could be read. Every short read in the SSHSIG
// envelope and in embedded key material reduces to this error.
var ErrTruncated = errors.New("sshwire: truncated buffer")

// EncodeString prefixes data with its length as a 4-byte big-endian
// unsigned integer. This is the SSH wire "string" encoding (RFC 4251
// §5); it applies to byte blobs as well as text.
func EncodeString(data []byte) []byte {
	out := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(out, uint32(len(data)))
	copy(out[4:], data)
	return out
}

// DecodeString reads one length-prefixed string from buffer starting
// at offset. Returns the string's contents and the offset of the next
// field. The returned slice aliases buffer; callers that retain it
// past the buffer's lifetime must copy.
//
// Fails with ErrTruncated if the buffer is too short for the length
// prefix or for the announced payload. The length arithmetic is done
// in int after a bounds check on the uint32, so a hostile length like
// 0xFFFFFFFF cannot overflow into a false success.
func DecodeString(buffer []byte, offset int) ([]byte, int, error) {
	if offset < 0 || offset+4 > len(buffer) {
		return nil, 0, ErrTruncated
	}
	length := binary.BigEndian.Uint32(buffer[offset:])
	offset += 4
	if uint32(len(buffer)-offset) < length {
		return nil, 0, ErrTruncated
	}
	end := offset + int(length)
	return buffer[offset:end], end, nil
}

// DecodeUint32 reads a plain 4-byte big-endian integer (no length
// prefix) from buffer at offset. Used for the SSHSIG version field.
func DecodeUint32(buffer []byte, offset int) (uint32, int, error) {
	if offset < 0 || offset+4 > len(buffer) {
		return 0, 0, ErrTruncated
	}
	return binary.BigEndian.Uint32(buffer[offset:]), offset + 4, nil
}
