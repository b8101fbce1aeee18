// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package store persists books and accounts. Two backends implement Store:
// a pair of JSON files keyed by title and login, and a SQL database accessed
// through bun (SQLite, PostgreSQL or MySQL).
package store // import "github.com/toeirei/librarian/internal/store"

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/toeirei/librarian/internal/config"
	"github.com/toeirei/librarian/internal/model"
)

// Store is the catalogue persistence layer. Lookups of missing entries
// return ErrNotFound; inserts clashing on title or login return ErrDuplicate.
type Store interface {
	// Books returns every book ordered by title.
	Books() ([]model.Book, error)
	Book(title string) (model.Book, error)
	// SaveBook inserts b when b.ID is zero, assigning its ID, and updates the
	// book with that ID otherwise. Titles may change on update.
	SaveBook(b *model.Book) error
	DeleteBook(title string) error

	// Users returns every account ordered by login.
	Users() ([]model.User, error)
	User(login string) (model.User, error)
	// SaveUser follows the SaveBook rules keyed by login.
	SaveUser(u *model.User) error
	DeleteUser(login string) error
	RenameUser(oldLogin, newLogin string) error

	Close() error
}

// DefaultSQLiteFile is used when storage.type is sqlite and no dsn is set.
const DefaultSQLiteFile = "librarian.db"

// Open creates the backend selected by cfg.Type.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Type {
	case "", "json":
		return OpenJSON(cfg.BooksFile, cfg.AccountsFile)
	case "sqlite":
		dsn := cfg.Dsn
		if dsn == "" {
			dsn = filepath.Clean(DefaultSQLiteFile)
		}
		return OpenSQL("sqlite", dsn)
	case "postgres", "mysql":
		return OpenSQL(cfg.Type, cfg.Dsn)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// Snapshot is the full content of a store.
type Snapshot struct {
	Books []model.Book
	Users []model.User
}

// snapshotBook and snapshotUser carry the identifying fields that the
// on-disk maps store as keys.
type snapshotBook struct {
	Title string `json:"title"`
	model.Book
}

type snapshotUser struct {
	Login string `json:"login"`
	model.User
}

type snapshotJSON struct {
	Books []snapshotBook `json:"books"`
	Users []snapshotUser `json:"users"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	w := snapshotJSON{
		Books: make([]snapshotBook, 0, len(s.Books)),
		Users: make([]snapshotUser, 0, len(s.Users)),
	}
	for _, b := range s.Books {
		w.Books = append(w.Books, snapshotBook{Title: b.Title, Book: b})
	}
	for _, u := range s.Users {
		w.Users = append(w.Users, snapshotUser{Login: u.Login, User: u})
	}
	return json.Marshal(w)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Books, s.Users = nil, nil
	for _, b := range w.Books {
		b.Book.Title = b.Title
		s.Books = append(s.Books, b.Book)
	}
	for _, u := range w.Users {
		u.User.Login = u.Login
		s.Users = append(s.Users, u.User)
	}
	return nil
}

// Dump reads everything from s.
func Dump(s Store) (Snapshot, error) {
	books, err := s.Books()
	if err != nil {
		return Snapshot{}, fmt.Errorf("read books: %w", err)
	}
	users, err := s.Users()
	if err != nil {
		return Snapshot{}, fmt.Errorf("read accounts: %w", err)
	}
	return Snapshot{Books: books, Users: users}, nil
}

// Load writes every entry of snap into s, replacing entries with the same
// title or login. IDs are assigned by s and last reader references are
// rewritten to match.
func Load(s Store, snap Snapshot) error {
	ids := map[int64]int64{}
	for _, u := range snap.Users {
		oldID := u.ID
		u.ID = 0
		if cur, err := s.User(u.Login); err == nil {
			u.ID = cur.ID
		}
		if err := s.SaveUser(&u); err != nil {
			return fmt.Errorf("restore account %q: %w", u.Login, err)
		}
		ids[oldID] = u.ID
	}
	for _, b := range snap.Books {
		b.ID = 0
		if cur, err := s.Book(b.Title); err == nil {
			b.ID = cur.ID
		}
		if b.LastReader != 0 {
			b.LastReader = ids[b.LastReader]
		}
		if err := s.SaveBook(&b); err != nil {
			return fmt.Errorf("restore book %q: %w", b.Title, err)
		}
	}
	return nil
}
