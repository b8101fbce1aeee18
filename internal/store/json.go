// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/util/mapst"
)

// JSONStore keeps the catalogue in two JSON objects, books keyed by title
// and accounts keyed by login. Both files are read once at open and
// rewritten after every change.
type JSONStore struct {
	mu           sync.Mutex
	booksPath    string
	accountsPath string
	books        map[string]model.Book
	users        map[string]model.User
	nextBookID   int64
	nextUserID   int64
}

var _ Store = (*JSONStore)(nil)

// OpenJSON loads booksPath and accountsPath. Missing files start empty.
func OpenJSON(booksPath, accountsPath string) (*JSONStore, error) {
	s := &JSONStore{
		booksPath:    booksPath,
		accountsPath: accountsPath,
		books:        map[string]model.Book{},
		users:        map[string]model.User{},
	}
	if err := readJSON(booksPath, &s.books); err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	if err := readJSON(accountsPath, &s.users); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	for title, b := range s.books {
		b.Title = title
		s.books[title] = b
		s.nextBookID = max(s.nextBookID, b.ID)
	}
	for login, u := range s.users {
		u.Login = login
		s.users[login] = u
		s.nextUserID = max(s.nextUserID, u.ID)
	}
	s.nextBookID++
	s.nextUserID++
	logging.Debugf("store: loaded %d books from %s and %d accounts from %s", len(s.books), booksPath, len(s.users), accountsPath)
	return s, nil
}

func readJSON[T any](path string, into *map[string]T) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if *into == nil {
		*into = map[string]T{}
	}
	return nil
}

// writeJSON replaces path atomically with the encoding of v.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *JSONStore) flushBooks() error {
	if err := writeJSON(s.booksPath, s.books); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	return nil
}

func (s *JSONStore) flushUsers() error {
	if err := writeJSON(s.accountsPath, s.users); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func (s *JSONStore) Books() ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapst.SortedValues(s.books), nil
}

func (s *JSONStore) Book(title string) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[title]
	if !ok {
		return model.Book{}, fmt.Errorf("book %q: %w", title, ErrNotFound)
	}
	return b, nil
}

func (s *JSONStore) SaveBook(b *model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Title == "" {
		return errors.New("book title must not be empty")
	}
	if other, ok := s.books[b.Title]; ok && other.ID != b.ID {
		return fmt.Errorf("book %q: %w", b.Title, ErrDuplicate)
	}
	if b.ID == 0 {
		b.ID = s.nextBookID
		s.nextBookID++
	} else {
		title, ok := mapst.FindKey(s.books, func(old model.Book) bool { return old.ID == b.ID })
		if !ok {
			return fmt.Errorf("book #%d: %w", b.ID, ErrNotFound)
		}
		delete(s.books, title)
	}
	s.books[b.Title] = *b
	return s.flushBooks()
}

func (s *JSONStore) DeleteBook(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[title]; !ok {
		return fmt.Errorf("book %q: %w", title, ErrNotFound)
	}
	delete(s.books, title)
	return s.flushBooks()
}

func (s *JSONStore) Users() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mapst.SortedValues(s.users), nil
}

func (s *JSONStore) User(login string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[login]
	if !ok {
		return model.User{}, fmt.Errorf("account %q: %w", login, ErrNotFound)
	}
	return u, nil
}

func (s *JSONStore) SaveUser(u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Login == "" {
		return errors.New("login must not be empty")
	}
	if other, ok := s.users[u.Login]; ok && other.ID != u.ID {
		return fmt.Errorf("account %q: %w", u.Login, ErrDuplicate)
	}
	if u.ID == 0 {
		u.ID = s.nextUserID
		s.nextUserID++
	} else {
		login, ok := mapst.FindKey(s.users, func(old model.User) bool { return old.ID == u.ID })
		if !ok {
			return fmt.Errorf("account #%d: %w", u.ID, ErrNotFound)
		}
		delete(s.users, login)
	}
	s.users[u.Login] = *u
	return s.flushUsers()
}

func (s *JSONStore) DeleteUser(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[login]; !ok {
		return fmt.Errorf("account %q: %w", login, ErrNotFound)
	}
	delete(s.users, login)
	return s.flushUsers()
}

func (s *JSONStore) RenameUser(oldLogin, newLogin string) error {
	u, err := s.User(oldLogin)
	if err != nil {
		return err
	}
	u.Login = newLogin
	return s.SaveUser(&u)
}

// Close is a no-op; every change is already on disk.
func (s *JSONStore) Close() error { return nil }
