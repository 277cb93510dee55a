// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package keytool provides typed access to the dropbearkey CLI for the
// key-management operations this tool delegates: key generation,
// public key extraction, and fingerprint display. The SSHSIG
// signing/verification core never shells out; only these collaborator
// operations do.
package keytool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is the dropbearkey executable resolved from PATH when
// no explicit path is configured.
const DefaultBinary = "dropbearkey"

// Tool runs dropbearkey commands. The zero value is not usable; call
// New.
type Tool struct {
	binary string
}

// New returns a Tool using the given dropbearkey binary. An empty
// string selects DefaultBinary.
func New(binary string) *Tool {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Tool{binary: binary}
}

// GenerateOptions are the optional dropbearkey generation parameters.
type GenerateOptions struct {
	// Bits is the key size. Empty means the tool's default.
	Bits string

	// Comment is embedded in the generated key. Empty means none.
	Comment string
}

// Generate creates a new keypair of the given type at keyFile.
func (t *Tool) Generate(ctx context.Context, keyType, keyFile string, opts GenerateOptions) error {
	args := []string{"-t", keyType, "-f", keyFile}
	if opts.Bits != "" {
		args = append(args, "-s", opts.Bits)
	}
	if opts.Comment != "" {
		args = append(args, "-C", opts.Comment)
	}
	_, err := t.run(ctx, args...)
	return err
}

// PublicKeyLine extracts the single-line public key record for the
// private key at keyFile: the first "ssh-*" line of dropbearkey -y
// output.
func (t *Tool) PublicKeyLine(ctx context.Context, keyFile string) (string, error) {
	output, err := t.run(ctx, "-y", "-f", keyFile)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ssh-") {
			return line, nil
		}
	}
	return "", fmt.Errorf("keytool: no public key line in dropbearkey output for %s", keyFile)
}

// Fingerprint returns the fingerprint line for the key at keyFile.
func (t *Tool) Fingerprint(ctx context.Context, keyFile string) (string, error) {
	output, err := t.run(ctx, "-y", "-f", keyFile)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Fingerprint:") {
			return strings.TrimSpace(line), nil
		}
	}
	return "", fmt.Errorf("keytool: no fingerprint line in dropbearkey output for %s", keyFile)
}

// run executes dropbearkey with a scrubbed environment and returns
// stdout. Stderr is captured separately and included in error messages
// on failure. Dropbear aborts with "String too long" when handed a
// large environment, so only a fixed allowlist of variables is passed
// through.
func (t *Tool) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, t.binary, args...)
	command.Env = scrubbedEnv()
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("keytool: %s %s: %w (stderr: %s)",
			t.binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// envAllowlist is the set of variables dropbearkey is allowed to see.
var envAllowlist = []string{"PATH", "HOME", "USER", "PWD", "SHELL"}

func scrubbedEnv() []string {
	env := make([]string, 0, len(envAllowlist))
	for _, name := range envAllowlist {
		if value, ok := os.LookupEnv(name); ok {
			env = append(env, name+"="+value)
		}
	}
	return env
}
