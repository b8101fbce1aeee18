// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package library is the interactive catalogue application: sign in, then a
// menu of reader actions, extended with administrator actions for admins.
package library

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/toeirei/librarian/internal/auth"
	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/menu"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/internal/prompt"
	"github.com/toeirei/librarian/internal/security"
	"github.com/toeirei/librarian/internal/store"
)

// MaxLoginAttempts is how many wrong passwords end the session.
const MaxLoginAttempts = 3

// ErrTooManyAttempts ends SignIn after MaxLoginAttempts failures.
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// App holds everything the menu actions work on.
type App struct {
	store   store.Store
	auth    *auth.Service
	console *console.Console
	prompt  prompt.Prompter
	user    model.User
}

func New(s store.Store, a *auth.Service, c *console.Console, p prompt.Prompter) *App {
	return &App{store: s, auth: a, console: c, prompt: p}
}

// User returns the signed in account.
func (a *App) User() model.User { return a.user }

// SetUser signs u in without a password; the command line uses it after its
// own authentication.
func (a *App) SetUser(u model.User) { a.user = u }

// Run signs in and shows the menu for the account's role until the user
// leaves it.
func (a *App) Run() error {
	if err := a.SignIn(); err != nil {
		return err
	}
	title := i18n.T("library.title", a.user.Login)
	return menu.Loop(a.console, title, a.Actions())
}

// SignIn registers the first administrator when there are no accounts and
// asks for login and password otherwise.
func (a *App) SignIn() error {
	first, err := a.auth.NeedsBootstrap()
	if err != nil {
		return err
	}
	if first {
		return a.register()
	}
	return a.login()
}

func (a *App) register() error {
	a.console.Screen(i18n.T("library.registration"))
	a.console.Writeln(i18n.T("library.first_account"))
	login, err := a.prompt.Ask(i18n.T("prompt.login"))
	if err != nil {
		return err
	}
	password, err := a.askNewPassword()
	if err != nil {
		return err
	}
	defer password.Zero()
	u, err := a.auth.Register(login, password, model.RoleAdmin)
	if err != nil {
		return err
	}
	a.user = u
	return nil
}

func (a *App) login() error {
	a.console.Screen(i18n.T("library.sign_in"))
	for attempt := 1; attempt <= MaxLoginAttempts; attempt++ {
		login, err := a.prompt.Ask(i18n.T("prompt.login"))
		if err != nil {
			return err
		}
		password, err := a.prompt.AskSecret(i18n.T("prompt.password"))
		if err != nil {
			return err
		}
		u, err := a.auth.Login(login, password)
		password.Zero()
		if err == nil {
			a.user = u
			logging.Infof("library: %q signed in", u.Login)
			return nil
		}
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return err
		}
		a.console.Error(i18n.T("library.wrong_credentials", MaxLoginAttempts-attempt))
	}
	return ErrTooManyAttempts
}

// Actions returns the menu for the signed in account.
func (a *App) Actions() []menu.Action {
	if a.user.IsAdmin() {
		return menu.Compose(a.UserActions(), a.AdminActions())
	}
	return a.UserActions()
}

// screen clears the console for the result of an action.
func (a *App) screen(titleID string, args ...any) {
	a.console.Screen(i18n.T(titleID, args...))
}

// choose shows options as a numbered list titled header.
func (a *App) choose(header string, options []string) (int, error) {
	return a.console.Select(options, console.ListOptions{Enumerate: true, Header: header})
}

// confirm asks a yes or no question; Escape counts as no.
func (a *App) confirm(question string) (bool, error) {
	i, err := a.choose(question, []string{i18n.T("library.confirm_yes"), i18n.T("library.confirm_no")})
	if errors.Is(err, console.ErrCancelled) {
		return false, nil
	}
	return i == 0, err
}

func (a *App) askNewPassword() (security.Secret, error) {
	p1, err := a.prompt.AskSecret(i18n.T("prompt.password"))
	if err != nil {
		return nil, err
	}
	p2, err := a.prompt.AskSecret(i18n.T("prompt.password_repeat"))
	if err != nil {
		return nil, err
	}
	defer p2.Zero()
	if !bytes.Equal(p1.Bytes(), p2.Bytes()) {
		p1.Zero()
		return nil, errors.New(i18n.T("library.password_mismatch"))
	}
	return p1, nil
}

// bookTable builds a table of books on the console.
func (a *App) bookTable(books []model.Book) *console.Table {
	return a.console.Table(model.BookRecords(books))
}

// pickBook lets the user pick one of books and loads it from the store.
func (a *App) pickBook(books []model.Book) (model.Book, error) {
	if len(books) == 0 {
		return model.Book{}, errors.New(i18n.T("library.no_books"))
	}
	title, err := a.bookTable(books).Pick()
	if err != nil {
		return model.Book{}, err
	}
	return a.store.Book(title)
}

// pickUser lets an administrator pick an account.
func (a *App) pickUser() (model.User, error) {
	users, err := a.store.Users()
	if err != nil {
		return model.User{}, err
	}
	if len(users) == 0 {
		return model.User{}, errors.New(i18n.T("library.no_users"))
	}
	login, err := a.console.Table(model.UserRecords(users)).Pick()
	if err != nil {
		return model.User{}, err
	}
	return a.store.User(login)
}

func (a *App) allBooks() ([]model.Book, error) {
	books, err := a.store.Books()
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, errors.New(i18n.T("library.no_books"))
	}
	return books, nil
}

// refreshUser reloads the signed in account after a change.
func (a *App) refreshUser() error {
	u, err := a.store.User(a.user.Login)
	if err != nil {
		return fmt.Errorf("reload account: %w", err)
	}
	a.user = u
	return nil
}
