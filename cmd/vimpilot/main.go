// Copyright 2026 The Vimpilot Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vimpilot/vimpilot/cmd/vimpilot/commands"
	"github.com/vimpilot/vimpilot/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their outcome themselves (like wait)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("vimpilot")
		return nil
	}

	// Interrupts cancel the context rather than killing the process,
	// so in-flight waits and subprocess analyses unwind cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return commands.Root().Execute(ctx, os.Args[1:])
}
