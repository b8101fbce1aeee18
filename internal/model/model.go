// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the catalogue entities shared by storage, the
// interactive screens and the command line.
package model // import "github.com/toeirei/librarian/internal/model"

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotInLibrary is returned when lending a book somebody already holds.
	ErrNotInLibrary = errors.New("book is not in the library")
	// ErrNotTaken is returned when returning a book the user does not hold.
	ErrNotTaken = errors.New("book is not held by this reader")
)

// Role decides which menu a user gets.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// Toggled returns the other role.
func (r Role) Toggled() Role {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// Book is one catalogue entry. Titles are unique and identify a book in the
// menus and on disk.
type Book struct {
	ID        int64  `json:"ID"`
	Title     string `json:"-"`
	Author    string `json:"Author"`
	Publisher string `json:"Publisher"`
	Year      int    `json:"Year"`
	Pages     int    `json:"Pages"`
	InLibrary bool   `json:"In library"`
	// LastReader is the ID of the last user who took the book, 0 if none.
	LastReader int64 `json:"Last reader"`
}

// User is an account. Logins are unique.
type User struct {
	ID           int64    `json:"ID"`
	Login        string   `json:"-"`
	PasswordHash string   `json:"Password"`
	Role         Role     `json:"Role"`
	TakenBooks   []string `json:"Taken books"`
}

// IsAdmin reports whether u gets the administrator menu.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// ReaderID is the six digit reader card number.
func (u User) ReaderID() string { return FormatReaderID(u.ID) }

// FormatReaderID formats a user ID as a reader card number; 0 formats as
// the empty string.
func FormatReaderID(id int64) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("%06d", id)
}

// Holds reports whether u currently holds the book titled title.
func (u User) Holds(title string) bool {
	return slices.Contains(u.TakenBooks, title)
}

// Lend hands b to u.
func Lend(b *Book, u *User) error {
	if !b.InLibrary {
		return fmt.Errorf("%q: %w", b.Title, ErrNotInLibrary)
	}
	b.InLibrary = false
	b.LastReader = u.ID
	u.TakenBooks = append(u.TakenBooks, b.Title)
	return nil
}

// Return puts b back on the shelf.
func Return(b *Book, u *User) error {
	i := slices.Index(u.TakenBooks, b.Title)
	if i < 0 {
		return fmt.Errorf("%q: %w", b.Title, ErrNotTaken)
	}
	u.TakenBooks = slices.Delete(u.TakenBooks, i, i+1)
	b.InLibrary = true
	return nil
}

// RenameTaken replaces oldTitle with newTitle in every user's list.
func RenameTaken(users []User, oldTitle, newTitle string) []User {
	var changed []User
	for _, u := range users {
		i := slices.Index(u.TakenBooks, oldTitle)
		if i < 0 {
			continue
		}
		u.TakenBooks = slices.Clone(u.TakenBooks)
		u.TakenBooks[i] = newTitle
		changed = append(changed, u)
	}
	return changed
}
