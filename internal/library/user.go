// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package library

import (
	"errors"
	"strings"

	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/menu"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/util/slicest"
)

// UserActions is the menu every account gets.
func (a *App) UserActions() []menu.Action {
	return []menu.Action{
		{Label: i18n.T("library.action.published_since"), Run: a.PublishedSince},
		{Label: i18n.T("library.action.view_books"), Run: a.ViewBooks},
		{Label: i18n.T("library.action.on_loan"), Run: a.OnLoan},
		{Label: i18n.T("library.action.search"), Run: a.Search},
		{Label: i18n.T("library.action.sort"), Run: a.SortBooks},
		{Label: i18n.T("library.action.take"), Run: a.TakeBook},
		{Label: i18n.T("library.action.return"), Run: a.ReturnBook},
		{Label: i18n.T("library.action.my_books"), Run: a.MyBooks},
	}
}

// PublishedSince shows the books on the shelf published in or after a year,
// ordered by author.
func (a *App) PublishedSince() error {
	year, err := a.prompt.AskInt(i18n.T("prompt.year"))
	if err != nil {
		return err
	}
	books, err := a.store.Books()
	if err != nil {
		return err
	}
	found := slicest.Filter(books, func(b model.Book) bool {
		return b.InLibrary && b.Year >= year
	})
	t := a.bookTable(found)
	if t.Len() == 0 {
		a.console.Writeln(i18n.T("library.none_since", year))
		return t.View()
	}
	if err := t.Sort(model.ColumnAuthor, console.Ascending); err != nil {
		return err
	}
	return t.View()
}

// ViewBooks shows the whole catalogue.
func (a *App) ViewBooks() error {
	books, err := a.store.Books()
	if err != nil {
		return err
	}
	return a.bookTable(books).View()
}

// OnLoan shows the books currently taken by readers.
func (a *App) OnLoan() error {
	books, err := a.store.Books()
	if err != nil {
		return err
	}
	return a.bookTable(books).Filter(func(r console.Record) bool {
		in, _ := r[model.ColumnInLibrary].(bool)
		return !in
	}).View()
}

// Search shows the books whose title or author contains the query,
// ignoring case.
func (a *App) Search() error {
	query, err := a.prompt.Ask(i18n.T("prompt.search"))
	if err != nil {
		return err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	books, err := a.store.Books()
	if err != nil {
		return err
	}
	found := slicest.Filter(books, func(b model.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.Author), query)
	})
	if len(found) == 0 {
		a.console.Writeln(i18n.T("library.no_matches", query))
	}
	return a.bookTable(found).View()
}

// SortBooks asks for a column and a direction and shows the sorted
// catalogue.
func (a *App) SortBooks() error {
	books, err := a.allBooks()
	if err != nil {
		return err
	}
	col, err := a.choose(i18n.T("library.sort_column"), model.BookColumns)
	if err != nil {
		return err
	}
	dir, err := a.choose(i18n.T("library.sort_direction"), []string{
		i18n.T("library.ascending"), i18n.T("library.descending"),
	})
	if err != nil {
		return err
	}
	t := a.bookTable(books)
	direction := console.Ascending
	if dir == 1 {
		direction = console.Descending
	}
	if err := t.Sort(model.BookColumns[col], direction); err != nil {
		return err
	}
	return t.View()
}

// TakeBook lends one of the books on the shelf to the signed in account.
func (a *App) TakeBook() error {
	books, err := a.store.Books()
	if err != nil {
		return err
	}
	shelf := slicest.Filter(books, func(b model.Book) bool { return b.InLibrary })
	if len(shelf) == 0 {
		return errors.New(i18n.T("library.shelf_empty"))
	}
	b, err := a.pickBook(shelf)
	if err != nil {
		return err
	}
	if err := a.refreshUser(); err != nil {
		return err
	}
	before := b
	if err := model.Lend(&b, &a.user); err != nil {
		return err
	}
	if err := a.saveLoan(before, b); err != nil {
		return err
	}
	logging.Infof("library: %q took %q", a.user.Login, b.Title)
	a.screen("library.action.take")
	a.console.Success(i18n.T("library.taken", b.Title))
	return nil
}

// ReturnBook puts one of the signed in account's books back on the shelf.
func (a *App) ReturnBook() error {
	if err := a.refreshUser(); err != nil {
		return err
	}
	if len(a.user.TakenBooks) == 0 {
		return errors.New(i18n.T("library.nothing_taken"))
	}
	i, err := a.choose(i18n.T("library.action.return"), a.user.TakenBooks)
	if err != nil {
		return err
	}
	b, err := a.store.Book(a.user.TakenBooks[i])
	if err != nil {
		return err
	}
	before := b
	if err := model.Return(&b, &a.user); err != nil {
		return err
	}
	if err := a.saveLoan(before, b); err != nil {
		return err
	}
	logging.Infof("library: %q returned %q", a.user.Login, b.Title)
	a.screen("library.action.return")
	a.console.Success(i18n.T("library.returned", b.Title))
	return nil
}

// saveLoan stores b and the signed in account. If the account cannot be
// saved the book is written back as before, and the account is reloaded.
func (a *App) saveLoan(before, b model.Book) error {
	if err := a.store.SaveBook(&b); err != nil {
		_ = a.refreshUser()
		return err
	}
	if err := a.store.SaveUser(&a.user); err != nil {
		if rerr := a.store.SaveBook(&before); rerr != nil {
			logging.Errorf("library: could not restore %q: %v", before.Title, rerr)
		}
		_ = a.refreshUser()
		return err
	}
	return nil
}

// MyBooks lists the books the signed in account holds, page by page.
func (a *App) MyBooks() error {
	if err := a.refreshUser(); err != nil {
		return err
	}
	return a.console.List().Browse(a.user.TakenBooks, console.ListOptions{
		Enumerate: true,
		Header:    i18n.T("library.reader_card", a.user.ReaderID()),
	})
}
