// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book or account has the given key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a title or login is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// MapDBError maps driver errors to the package sentinels: unique constraint
// violations become ErrDuplicate and sql.ErrNoRows becomes ErrNotFound. The
// match is string based so no driver package is needed here.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry (1062), Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
