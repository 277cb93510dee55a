// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestParseInvocationSign(t *testing.T) {
	inv, err := parseInvocation([]string{"-Y", "sign", "-n", "git", "-f", "/keys/id_ed25519", "message.txt"})
	if err != nil {
		t.Fatalf("parseInvocation: %v", err)
	}
	if inv.kind != opSign {
		t.Errorf("kind = %v, want opSign", inv.kind)
	}
	if inv.keyFile != "/keys/id_ed25519" {
		t.Errorf("keyFile = %q", inv.keyFile)
	}
	if inv.namespace != "git" {
		t.Errorf("namespace = %q", inv.namespace)
	}
	if inv.messageFile != "message.txt" {
		t.Errorf("messageFile = %q", inv.messageFile)
	}
}

func TestParseInvocationVerify(t *testing.T) {
	inv, err := parseInvocation([]string{
		"-Y", "verify", "-n", "git", "-s", "msg.sig", "-f", "allowed", "-I", "alice",
		"-Overify-time=20260829120000", "msg",
	})
	if err != nil {
		t.Fatalf("parseInvocation: %v", err)
	}
	if inv.kind != opVerify {
		t.Errorf("kind = %v, want opVerify", inv.kind)
	}
	if inv.signatureFile != "msg.sig" {
		t.Errorf("signatureFile = %q", inv.signatureFile)
	}
	if inv.identity != "alice" {
		t.Errorf("identity = %q", inv.identity)
	}
	if inv.verifyTime != "20260829120000" {
		t.Errorf("verifyTime = %q", inv.verifyTime)
	}
	if inv.messageFile != "msg" {
		t.Errorf("messageFile = %q", inv.messageFile)
	}
}

func TestParseInvocationClassification(t *testing.T) {
	cases := []struct {
		args []string
		want opKind
	}{
		{[]string{"-Y", "find-principals", "-s", "sig", "-f", "allowed"}, opFindPrincipals},
		{[]string{"-Y", "check-novalidate", "-s", "sig"}, opCheckNoValidate},
		{[]string{"-t", "ed25519", "-f", "key"}, opKeygen},
		{[]string{"-y", "-f", "key"}, opPublicKey},
		{[]string{"-l", "-f", "key"}, opFingerprint},
		{[]string{"-p", "-f", "key"}, opFingerprint},
		{[]string{"-V"}, opVersion},
		{[]string{"-h"}, opHelp},
		{nil, opHelp},
	}

	for _, c := range cases {
		inv, err := parseInvocation(c.args)
		if err != nil {
			t.Errorf("parseInvocation(%v): %v", c.args, err)
			continue
		}
		if inv.kind != c.want {
			t.Errorf("parseInvocation(%v).kind = %v, want %v", c.args, inv.kind, c.want)
		}
	}
}

func TestParseInvocationOperationPrecedence(t *testing.T) {
	// A -Y operation wins even when keygen-shaped flags are present.
	inv, err := parseInvocation([]string{"-Y", "sign", "-t", "ed25519", "-f", "key"})
	if err != nil {
		t.Fatalf("parseInvocation: %v", err)
	}
	if inv.kind != opSign {
		t.Errorf("kind = %v, want opSign", inv.kind)
	}
}

func TestParseInvocationToleratesUnknownFlags(t *testing.T) {
	inv, err := parseInvocation([]string{"-Y", "verify", "-q", "-s", "sig", "-Z", "msg"})
	if err != nil {
		t.Fatalf("parseInvocation: %v", err)
	}
	if inv.messageFile != "msg" {
		t.Errorf("messageFile = %q, want msg", inv.messageFile)
	}
}

func TestParseInvocationErrors(t *testing.T) {
	if _, err := parseInvocation([]string{"-Y", "decrypt"}); err == nil {
		t.Error("unknown -Y operation accepted")
	}
	if _, err := parseInvocation([]string{"-Y"}); err == nil {
		t.Error("dangling -Y accepted")
	}
	if _, err := parseInvocation([]string{"-f"}); err == nil {
		t.Error("dangling -f accepted")
	}
	if _, err := parseInvocation([]string{"stray-file"}); err == nil {
		t.Error("bare positional with no operation accepted")
	}
}
