// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/librarian/internal/backup"
	"github.com/toeirei/librarian/internal/config"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/store"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Create a compressed (zstd) JSON backup of the catalogue",
		Long: `Dumps every book and account into a single Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's not already present.
If no output file is specified, a default filename 'librarian-backup-YYYY-MM-DD.json.zst' is used.

Examples:
  librarian backup
  librarian backup my-backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			path := backup.FileName(name, time.Now())
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup_starting"))
			if err := backup.WriteFile(path, appStore); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.backup_failed"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("library.backup_written", path))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file.zst>",
		Short: "Restore the catalogue from a compressed JSON backup",
		Long: `Loads books and accounts from a backup written by 'librarian backup'.
Entries with the same title or login are overwritten; everything else
already in the catalogue is kept.

Example:
  librarian restore ./librarian-backup-2026-10-17.json.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore_starting", args[0]))
			snap, err := backup.Restore(args[0], appStore)
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.restore_failed"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore_done", len(snap.Books), len(snap.Users)))
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var target config.Storage
	cmd := &cobra.Command{
		Use:   "migrate --to <type> [--to-dsn <dsn>]",
		Short: "Copy the catalogue into another storage backend",
		Long: `Copies every book and account from the configured storage into a target
storage. For a json target --to-dsn names the directory for books.json and
accounts.json.

Example:
  librarian migrate --to postgres --to-dsn "postgres://librarian@localhost/librarian"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if target.Type == "json" {
				target.BooksFile = filepath.Join(target.Dsn, "books.json")
				target.AccountsFile = filepath.Join(target.Dsn, "accounts.json")
			}
			if err := (config.Config{Storage: target}).Validate(); err != nil {
				return err
			}
			dst, err := store.Open(target)
			if err != nil {
				return errors.New(i18n.T("cli.error_open_storage", err))
			}
			defer func() { _ = dst.Close() }()

			snap, err := store.Dump(appStore)
			if err != nil {
				return err
			}
			if err := store.Load(dst, snap); err != nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.migrate_failed"), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.migrate_done", len(snap.Books), len(snap.Users), target.Type))
			return nil
		},
	}
	cmd.Flags().StringVar(&target.Type, "to", "", "Target storage type (json, sqlite, postgres, mysql)")
	cmd.Flags().StringVar(&target.Dsn, "to-dsn", "", "Target connection string, or directory for json")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
