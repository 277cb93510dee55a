// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/enveng-tools/sshsign/lib/config"
	"github.com/enveng-tools/sshsign/lib/keytool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sshsign: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sshsign: %v\n", err)
		os.Exit(1)
	}

	dispatcher := &Dispatcher{
		Config:  cfg,
		Logger:  logger,
		Keytool: keytool.New(cfg.Keytool.Binary),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}

	code := dispatcher.Run(os.Args[1:])
	closeLog()
	os.Exit(code)
}

// newLogger builds the structured logger from config: text handler to
// stderr by default, or appended to a file when one is configured.
// The returned close function is a no-op for stderr.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var output io.Writer = os.Stderr
	closeLog := func() {}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		output = file
		closeLog = func() { file.Close() }
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: cfg.LogLevel()})
	return slog.New(handler), closeLog, nil
}
