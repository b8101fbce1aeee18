// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Librarian.
//
// Usage:
//
//	go run . [flags]
//	./librarian [flags]
//
// This starts the interactive catalogue. See --help for subcommands.
package main

import (
	"os"

	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("librarian: %v", err)
		os.Exit(1)
	}
}
