// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup writes and reads zstd-compressed JSON snapshots of the
// catalogue.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/store"
)

// Extension is appended to backup file names that lack it.
const Extension = ".zst"

// DefaultFileName returns librarian-backup-YYYY-MM-DD.json.zst for now.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("librarian-backup-%s.json%s", now.Format("2006-01-02"), Extension)
}

// FileName returns name with Extension appended when missing, or the default
// name when name is empty.
func FileName(name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFileName(now)
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	return name
}

// Write streams the compressed snapshot to w.
func Write(w io.Writer, snap store.Snapshot) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (store.Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var snap store.Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("decode backup: %w", err)
	}
	return snap, nil
}

// WriteFile dumps s into the file at path.
func WriteFile(path string, s store.Store) error {
	snap, err := store.Dump(s)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logging.Infof("backup: wrote %d books and %d accounts to %s", len(snap.Books), len(snap.Users), path)
	return nil
}

// Restore loads the backup at path into s, replacing entries with the same
// title or login.
func Restore(path string, s store.Store) (store.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	snap, err := Read(f)
	if err != nil {
		return store.Snapshot{}, err
	}
	if err := store.Load(s, snap); err != nil {
		return store.Snapshot{}, err
	}
	logging.Infof("backup: restored %d books and %d accounts from %s", len(snap.Books), len(snap.Users), path)
	return snap, nil
}

// List returns the backup files in dir, sorted by name.
func List(dir string) ([]string, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		names[i] = filepath.Base(n)
	}
	slices.Sort(names)
	return names, nil
}
