// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Librarian using Cobra.
// It wires configuration and storage, starts the interactive catalogue and
// provides scriptable commands for listing, accounts and backups.
package cli
