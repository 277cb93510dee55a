// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
)

// opKind classifies an invocation into one operation. The
// classification happens once, from the raw token stream; there are
// no intermediate states.
type opKind int

const (
	opHelp opKind = iota
	opVersion
	opSign
	opVerify
	opFindPrincipals
	opCheckNoValidate
	opKeygen
	opPublicKey
	opFingerprint
)

// invocation is one parsed command line. Constructed once by
// parseInvocation and never mutated afterwards.
type invocation struct {
	kind opKind

	// keyFile is the -f argument. For sign this is the private key
	// (a trailing .pub is stripped later); for verify and
	// find-principals it is the allowed-signers listing, matching
	// ssh-keygen's overloaded use of the flag.
	keyFile string

	signatureFile string // -s
	namespace     string // -n, empty means unset
	identity      string // -I
	keyType       string // -t
	bits          string // -b
	comment       string // -C
	verifyTime    string // -Overify-time=<ts>, accepted but not enforced

	// messageFile is the first positional argument. Empty means the
	// message comes from standard input.
	messageFile string
}

// valueFlags take a separate value token.
var valueFlags = map[string]bool{
	"-Y": true, "-f": true, "-s": true, "-n": true,
	"-I": true, "-t": true, "-b": true, "-C": true,
}

// parseInvocation scans ssh-keygen style tokens into an invocation.
// The syntax is fixed by the callers this tool substitutes for (git
// invoking ssh-keygen), so unknown flags are tolerated rather than
// rejected: a newer git may pass options we do not model, and the
// original behavior is to ignore them.
func parseInvocation(args []string) (*invocation, error) {
	inv := &invocation{kind: opHelp}

	var (
		operation   string
		publicKey   bool
		fingerprint bool
		version     bool
		help        = len(args) == 0
	)

	for i := 0; i < len(args); i++ {
		token := args[i]
		switch {
		case valueFlags[token]:
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag %s requires a value", token)
			}
			i++
			value := args[i]
			switch token {
			case "-Y":
				operation = value
			case "-f":
				inv.keyFile = value
			case "-s":
				inv.signatureFile = value
			case "-n":
				inv.namespace = value
			case "-I":
				inv.identity = value
			case "-t":
				inv.keyType = value
			case "-b":
				inv.bits = value
			case "-C":
				inv.comment = value
			}
		case token == "-y":
			publicKey = true
		case token == "-l", token == "-p":
			fingerprint = true
		case token == "-V":
			version = true
		case token == "-h", token == "--help":
			help = true
		case strings.HasPrefix(token, "-Overify-time="):
			inv.verifyTime = strings.TrimPrefix(token, "-Overify-time=")
		case strings.HasPrefix(token, "-"):
			// Tolerated: -q and any option this tool does not model.
		default:
			if inv.messageFile == "" {
				inv.messageFile = token
			}
		}
	}

	switch {
	case help:
		inv.kind = opHelp
	case operation != "":
		switch operation {
		case "sign":
			inv.kind = opSign
		case "verify":
			inv.kind = opVerify
		case "find-principals":
			inv.kind = opFindPrincipals
		case "check-novalidate":
			inv.kind = opCheckNoValidate
		default:
			return nil, fmt.Errorf("unsupported -Y operation: %q", operation)
		}
	case publicKey:
		inv.kind = opPublicKey
	case fingerprint:
		inv.kind = opFingerprint
	case inv.keyType != "" && inv.keyFile != "":
		inv.kind = opKeygen
	case version:
		inv.kind = opVersion
	default:
		return nil, fmt.Errorf("insufficient arguments")
	}

	return inv, nil
}
