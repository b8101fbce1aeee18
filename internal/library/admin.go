// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toeirei/librarian/internal/auth"
	"github.com/toeirei/librarian/internal/backup"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/menu"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/internal/store"
	"github.com/toeirei/librarian/util/slicest"
)

// Errors refusing administrator changes that would break the catalogue.
var (
	ErrBookLent      = errors.New("book is lent to a reader")
	ErrHoldsBooks    = errors.New("account still holds books")
	ErrDeleteSelf    = errors.New("cannot delete the signed in account")
	ErrLastAdmin     = errors.New("the last administrator cannot lose the role")
	ErrInvalidNumber = errors.New("value must not be negative")
)

// Now is the clock used for backup file names.
var Now = time.Now

// BackupDir is where DeleteBackup looks for backup files.
var BackupDir = "."

// AdminActions is the menu added for administrators. Every action checks the
// role again so a demoted account cannot keep using a menu built earlier.
func (a *App) AdminActions() []menu.Action {
	actions := []menu.Action{
		{Label: i18n.T("library.action.view_users"), Run: a.ViewUsers},
		{Label: i18n.T("library.action.add_book"), Run: a.AddBook},
		{Label: i18n.T("library.action.edit_book"), Run: a.EditBook},
		{Label: i18n.T("library.action.delete_book"), Run: a.DeleteBook},
		{Label: i18n.T("library.action.add_user"), Run: a.AddUser},
		{Label: i18n.T("library.action.edit_user"), Run: a.EditUser},
		{Label: i18n.T("library.action.delete_user"), Run: a.DeleteUser},
		{Label: i18n.T("library.action.backup"), Run: a.Backup},
		{Label: i18n.T("library.action.delete_backup"), Run: a.DeleteBackup},
	}
	for i := range actions {
		run := actions[i].Run
		actions[i].Run = func() error {
			if err := auth.RequireAdmin(a.user); err != nil {
				return err
			}
			return run()
		}
	}
	return actions
}

// ViewUsers lets the administrator pick an account and shows its details.
func (a *App) ViewUsers() error {
	u, err := a.pickUser()
	if err != nil {
		return err
	}
	a.console.Screen(u.Login)
	a.console.Lines(
		fmt.Sprintf("%s: %s", model.ColumnID, u.ReaderID()),
		fmt.Sprintf("%s: %s", model.ColumnRole, u.Role),
		fmt.Sprintf("%s: %d", model.ColumnTaken, len(u.TakenBooks)),
	)
	for _, title := range u.TakenBooks {
		a.console.Writeln("  " + title)
	}
	return nil
}

// AddBook asks for every field of a new book and puts it on the shelf.
func (a *App) AddBook() error {
	title, err := a.askText("prompt.title")
	if err != nil {
		return err
	}
	if _, err := a.store.Book(title); err == nil {
		return fmt.Errorf("%q: %w", title, store.ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	b := model.Book{Title: title, InLibrary: true}
	if b.Author, err = a.askText("prompt.author"); err != nil {
		return err
	}
	if b.Publisher, err = a.askText("prompt.publisher"); err != nil {
		return err
	}
	if b.Year, err = a.askNumber("prompt.year"); err != nil {
		return err
	}
	if b.Pages, err = a.askNumber("prompt.pages"); err != nil {
		return err
	}
	if err := a.store.SaveBook(&b); err != nil {
		return err
	}
	logging.Infof("library: %q added book %q", a.user.Login, b.Title)
	a.console.Success(i18n.T("library.book_added", b.Title))
	return nil
}

// EditBook changes one field of a book. A new title is carried over to the
// readers holding the book.
func (a *App) EditBook() error {
	books, err := a.allBooks()
	if err != nil {
		return err
	}
	b, err := a.pickBook(books)
	if err != nil {
		return err
	}
	fields := []string{model.ColumnTitle, model.ColumnAuthor, model.ColumnPublisher, model.ColumnYear, model.ColumnPages}
	f, err := a.choose(b.Title, fields)
	if err != nil {
		return err
	}
	a.console.Screen(b.Title)
	oldTitle := b.Title
	switch fields[f] {
	case model.ColumnTitle:
		b.Title, err = a.askText("prompt.title")
	case model.ColumnAuthor:
		b.Author, err = a.askText("prompt.author")
	case model.ColumnPublisher:
		b.Publisher, err = a.askText("prompt.publisher")
	case model.ColumnYear:
		b.Year, err = a.askNumber("prompt.year")
	case model.ColumnPages:
		b.Pages, err = a.askNumber("prompt.pages")
	}
	if err != nil {
		return err
	}
	if b.Title != oldTitle {
		if err := a.renameBook(b, oldTitle); err != nil {
			return err
		}
	} else if err := a.store.SaveBook(&b); err != nil {
		return err
	}
	logging.Infof("library: %q edited book %q", a.user.Login, b.Title)
	a.console.Success(i18n.T("library.book_saved", b.Title))
	return nil
}

// renameBook saves b under its new title and updates the readers' lists.
func (a *App) renameBook(b model.Book, oldTitle string) error {
	if err := a.store.SaveBook(&b); err != nil {
		return err
	}
	users, err := a.store.Users()
	if err != nil {
		return err
	}
	for _, u := range model.RenameTaken(users, oldTitle, b.Title) {
		if err := a.store.SaveUser(&u); err != nil {
			return err
		}
		if u.Login == a.user.Login {
			a.user = u
		}
	}
	return nil
}

// DeleteBook removes a book that is on the shelf after confirmation.
func (a *App) DeleteBook() error {
	books, err := a.allBooks()
	if err != nil {
		return err
	}
	b, err := a.pickBook(books)
	if err != nil {
		return err
	}
	if !b.InLibrary {
		return fmt.Errorf("%q: %w", b.Title, ErrBookLent)
	}
	ok, err := a.confirm(i18n.T("library.confirm_delete", b.Title))
	if err != nil || !ok {
		return err
	}
	if err := a.store.DeleteBook(b.Title); err != nil {
		return err
	}
	logging.Infof("library: %q deleted book %q", a.user.Login, b.Title)
	a.console.Screen(i18n.T("library.action.delete_book"))
	a.console.Success(i18n.T("library.book_deleted", b.Title))
	return nil
}

// AddUser creates an account with a chosen role.
func (a *App) AddUser() error {
	login, err := a.askText("prompt.login")
	if err != nil {
		return err
	}
	password, err := a.askNewPassword()
	if err != nil {
		return err
	}
	defer password.Zero()
	role, err := a.chooseRole(login)
	if err != nil {
		return err
	}
	u, err := a.auth.Register(login, password, role)
	if err != nil {
		return err
	}
	a.console.Screen(i18n.T("library.action.add_user"))
	a.console.Success(i18n.T("library.user_added", u.Login, u.ReaderID()))
	return nil
}

func (a *App) chooseRole(header string) (model.Role, error) {
	roles := []model.Role{model.RoleUser, model.RoleAdmin}
	labels := slicest.Map(roles, func(r model.Role) string { return string(r) })
	i, err := a.choose(header, labels)
	if err != nil {
		return "", err
	}
	return roles[i], nil
}

// EditUser changes the login, the password or the role of an account.
func (a *App) EditUser() error {
	u, err := a.pickUser()
	if err != nil {
		return err
	}
	fields := []string{i18n.T("library.field.login"), i18n.T("library.field.password"), i18n.T("library.field.role")}
	f, err := a.choose(u.Login, fields)
	if err != nil {
		return err
	}
	a.console.Screen(u.Login)
	switch f {
	case 0:
		err = a.renameUser(u)
	case 1:
		err = a.resetPassword(u)
	case 2:
		err = a.toggleRole(u)
	}
	if err != nil {
		return err
	}
	a.console.Success(i18n.T("library.user_saved"))
	return nil
}

func (a *App) renameUser(u model.User) error {
	login, err := a.askText("prompt.login")
	if err != nil {
		return err
	}
	if err := a.store.RenameUser(u.Login, login); err != nil {
		return err
	}
	logging.Infof("library: %q renamed account %q to %q", a.user.Login, u.Login, login)
	if u.Login == a.user.Login {
		a.user.Login = login
	}
	return nil
}

func (a *App) resetPassword(u model.User) error {
	password, err := a.askNewPassword()
	if err != nil {
		return err
	}
	defer password.Zero()
	if err := a.auth.SetPassword(u.Login, password); err != nil {
		return err
	}
	logging.Infof("library: %q changed the password of %q", a.user.Login, u.Login)
	return nil
}

func (a *App) toggleRole(u model.User) error {
	if u.IsAdmin() {
		admins, err := a.adminCount()
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	u.Role = u.Role.Toggled()
	if err := a.store.SaveUser(&u); err != nil {
		return err
	}
	logging.Infof("library: %q made %q %s", a.user.Login, u.Login, u.Role)
	if u.Login == a.user.Login {
		a.user = u
	}
	return nil
}

func (a *App) adminCount() (int, error) {
	users, err := a.store.Users()
	if err != nil {
		return 0, err
	}
	return len(slicest.Filter(users, model.User.IsAdmin)), nil
}

// DeleteUser removes an account that holds no books. The signed in account
// cannot delete itself.
func (a *App) DeleteUser() error {
	u, err := a.pickUser()
	if err != nil {
		return err
	}
	if u.Login == a.user.Login {
		return ErrDeleteSelf
	}
	if len(u.TakenBooks) > 0 {
		return fmt.Errorf("%q: %w", u.Login, ErrHoldsBooks)
	}
	ok, err := a.confirm(i18n.T("library.confirm_delete", u.Login))
	if err != nil || !ok {
		return err
	}
	if err := a.store.DeleteUser(u.Login); err != nil {
		return err
	}
	logging.Infof("library: %q deleted account %q", a.user.Login, u.Login)
	a.console.Screen(i18n.T("library.action.delete_user"))
	a.console.Success(i18n.T("library.user_deleted", u.Login))
	return nil
}

// Backup writes a compressed snapshot of the catalogue. An empty name uses
// the dated default.
func (a *App) Backup() error {
	name, err := a.prompt.Ask(i18n.T("prompt.backup_file"))
	if err != nil {
		return err
	}
	path := backup.FileName(name, Now())
	if err := backup.WriteFile(path, a.store); err != nil {
		return err
	}
	a.console.Success(i18n.T("library.backup_written", path))
	return nil
}

// DeleteBackup removes a backup file chosen from BackupDir after
// confirmation.
func (a *App) DeleteBackup() error {
	names, err := backup.List(BackupDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New(i18n.T("library.no_backups"))
	}
	i, err := a.choose(i18n.T("library.action.delete_backup"), names)
	if err != nil {
		return err
	}
	ok, err := a.confirm(i18n.T("library.confirm_delete", names[i]))
	if err != nil || !ok {
		return err
	}
	if err := os.Remove(filepath.Join(BackupDir, names[i])); err != nil {
		return err
	}
	logging.Infof("library: %q deleted backup %s", a.user.Login, names[i])
	a.console.Screen(i18n.T("library.action.delete_backup"))
	a.console.Success(i18n.T("library.backup_deleted", names[i]))
	return nil
}

// askText asks until a non-empty answer is given.
func (a *App) askText(labelID string) (string, error) {
	for {
		s, err := a.prompt.Ask(i18n.T(labelID))
		if err != nil {
			return "", err
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
		a.console.Error(i18n.T("library.empty_answer"))
	}
}

func (a *App) askNumber(labelID string) (int, error) {
	n, err := a.prompt.AskInt(i18n.T(labelID))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
