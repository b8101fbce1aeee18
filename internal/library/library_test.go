// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/librarian/internal/auth"
	"github.com/toeirei/librarian/internal/backup"
	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/console/consoletest"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/internal/prompt/prompttest"
	"github.com/toeirei/librarian/internal/security"
	"github.com/toeirei/librarian/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	i18n.Init("en")
	os.Exit(m.Run())
}

type fixture struct {
	app    *App
	screen *consoletest.Screen
	store  store.Store
	auth   *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	s, err := store.OpenJSON(filepath.Join(dir, "books.json"), filepath.Join(dir, "accounts.json"))
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	a := auth.New(s).WithCost(bcrypt.MinCost)
	screen := consoletest.New(80, 24)
	app := New(s, a, console.New(screen, console.DefaultConfig()), prompttest.New())
	return &fixture{app: app, screen: screen, store: s, auth: a}
}

// script replaces the prompt answers and the key presses.
func (f *fixture) script(answers []string, keys ...console.Key) *prompttest.Script {
	p := prompttest.New(answers...)
	f.app.prompt = p
	f.screen.Push(keys...)
	return p
}

func (f *fixture) register(t *testing.T, login string, role model.Role) model.User {
	t.Helper()
	u, err := f.auth.Register(login, security.FromString(login+"-pw"), role)
	if err != nil {
		t.Fatalf("Register %q: %v", login, err)
	}
	return u
}

func (f *fixture) signIn(t *testing.T, login string) {
	t.Helper()
	u, err := f.store.User(login)
	if err != nil {
		t.Fatalf("User %q: %v", login, err)
	}
	f.app.SetUser(u)
}

func (f *fixture) addBooks(t *testing.T, books ...model.Book) {
	t.Helper()
	for i := range books {
		if err := f.store.SaveBook(&books[i]); err != nil {
			t.Fatalf("SaveBook %q: %v", books[i].Title, err)
		}
	}
}

func (f *fixture) book(t *testing.T, title string) model.Book {
	t.Helper()
	b, err := f.store.Book(title)
	if err != nil {
		t.Fatalf("Book %q: %v", title, err)
	}
	return b
}

func (f *fixture) user(t *testing.T, login string) model.User {
	t.Helper()
	u, err := f.store.User(login)
	if err != nil {
		t.Fatalf("User %q: %v", login, err)
	}
	return u
}

// lineOf returns the first screen row containing sub, or -1.
func lineOf(s *consoletest.Screen, sub string) int {
	for y := 0; y < s.Height; y++ {
		if strings.Contains(s.Line(y), sub) {
			return y
		}
	}
	return -1
}

func shelf() []model.Book {
	return []model.Book{
		{Title: "Alpha", Author: "Zed", Publisher: "North", Year: 1990, Pages: 100, InLibrary: true},
		{Title: "Beta", Author: "Adams", Publisher: "South", Year: 2001, Pages: 200, InLibrary: true},
		{Title: "Gamma", Author: "Brown", Publisher: "East", Year: 2005, Pages: 300},
		{Title: "Delta", Author: "Young", Publisher: "West", Year: 1999, Pages: 400, InLibrary: true},
	}
}

func TestSignIn_RegistersFirstAdministrator(t *testing.T) {
	f := newFixture(t)
	f.script([]string{"root", "secret", "secret"})
	if err := f.app.SignIn(); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if u := f.app.User(); u.Login != "root" || !u.IsAdmin() {
		t.Fatalf("signed in as %+v", u)
	}
	if _, err := f.auth.Login("root", security.FromString("secret")); err != nil {
		t.Fatalf("password not stored: %v", err)
	}
}

func TestSignIn_RegistrationRejectsMismatchedPasswords(t *testing.T) {
	f := newFixture(t)
	f.script([]string{"root", "one", "two"})
	if err := f.app.SignIn(); err == nil {
		t.Fatalf("expected an error for mismatched passwords")
	}
	if first, _ := f.auth.NeedsBootstrap(); !first {
		t.Fatalf("no account should have been created")
	}
}

func TestSignIn_RetriesWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.register(t, "reader", model.RoleUser)
	f.script([]string{"reader", "wrong", "reader", "reader-pw"})
	if err := f.app.SignIn(); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if u := f.app.User(); u.Login != "reader" || u.IsAdmin() {
		t.Fatalf("signed in as %+v", u)
	}
	if !f.screen.Contains(i18n.T("library.wrong_credentials", MaxLoginAttempts-1)) {
		t.Fatalf("expected a wrong credentials message:\n%s", f.screen.Text())
	}
}

func TestSignIn_GivesUpAfterMaxAttempts(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.script([]string{"root", "a", "root", "b", "root", "c", "root", "root-pw"})
	if err := f.app.SignIn(); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestActions_DependOnRole(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.register(t, "reader", model.RoleUser)

	f.signIn(t, "reader")
	userMenu := len(f.app.Actions())
	if userMenu != len(f.app.UserActions()) {
		t.Fatalf("reader menu has %d entries", userMenu)
	}
	f.signIn(t, "root")
	if got, want := len(f.app.Actions()), userMenu+len(f.app.AdminActions()); got != want {
		t.Fatalf("admin menu has %d entries, want %d", got, want)
	}
}

func TestAdminActions_RequireAdministrator(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.register(t, "reader", model.RoleUser)
	f.signIn(t, "root")
	actions := f.app.AdminActions()

	// Demoted after the menu was built.
	f.signIn(t, "reader")
	p := f.script(nil)
	for _, a := range actions {
		if err := a.Run(); !errors.Is(err, auth.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", a.Label, err)
		}
	}
	if len(p.Labels) != 0 {
		t.Fatalf("forbidden actions must not prompt, asked %v", p.Labels)
	}
}

func TestPublishedSince_FiltersShelfAndSortsByAuthor(t *testing.T) {
	f := newFixture(t)
	f.addBooks(t, shelf()...)
	f.script([]string{"1995"}, console.KeyEnter)
	if err := f.app.PublishedSince(); err != nil {
		t.Fatalf("PublishedSince: %v", err)
	}
	beta, delta := lineOf(f.screen, "Beta"), lineOf(f.screen, "Delta")
	if beta < 0 || delta < 0 || beta > delta {
		t.Fatalf("expected Beta (Adams) above Delta (Young):\n%s", f.screen.Text())
	}
	for _, missing := range []string{"Alpha", "Gamma"} {
		if f.screen.Contains(missing) {
			t.Fatalf("%s must be filtered out:\n%s", missing, f.screen.Text())
		}
	}
}

func TestPublishedSince_NothingFound(t *testing.T) {
	f := newFixture(t)
	f.addBooks(t, shelf()...)
	f.script([]string{"2100"})
	if err := f.app.PublishedSince(); !errors.Is(err, console.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if !f.screen.Contains(i18n.T("library.none_since", 2100)) {
		t.Fatalf("expected explanation:\n%s", f.screen.Text())
	}
}

func TestOnLoan_ShowsTakenBooksOnly(t *testing.T) {
	f := newFixture(t)
	f.addBooks(t, shelf()...)
	f.script(nil, console.KeyEnter)
	if err := f.app.OnLoan(); err != nil {
		t.Fatalf("OnLoan: %v", err)
	}
	if !f.screen.Contains("Gamma") || f.screen.Contains("Alpha") {
		t.Fatalf("unexpected loan list:\n%s", f.screen.Text())
	}
}

func TestSearch_MatchesTitleAndAuthorIgnoringCase(t *testing.T) {
	f := newFixture(t)
	f.addBooks(t, shelf()...)
	f.script([]string{"  ADA "}, console.KeyEnter)
	if err := f.app.Search(); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !f.screen.Contains("Beta") || f.screen.Contains("Alpha") {
		t.Fatalf("unexpected search result:\n%s", f.screen.Text())
	}

	f.script([]string{"zzz"})
	if err := f.app.Search(); !errors.Is(err, console.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSortBooks_ByYearDescending(t *testing.T) {
	f := newFixture(t)
	f.addBooks(t, shelf()...)
	yearKey := console.Key0 + console.Key(slices.Index(model.BookColumns, model.ColumnYear)+1)
	f.script(nil,
		yearKey, console.KeyEnter, // column
		console.Key2, console.KeyEnter, // descending
		console.KeyEnter, // close the table
	)
	if err := f.app.SortBooks(); err != nil {
		t.Fatalf("SortBooks: %v", err)
	}
	order := []int{lineOf(f.screen, "Gamma"), lineOf(f.screen, "Beta"), lineOf(f.screen, "Delta"), lineOf(f.screen, "Alpha")}
	if !slices.IsSorted(order) || order[0] < 0 {
		t.Fatalf("expected 2005, 2001, 1999, 1990 order, rows %v:\n%s", order, f.screen.Text())
	}
}

func TestTakeAndReturnBook(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	reader := f.register(t, "reader", model.RoleUser)
	f.addBooks(t, shelf()...)
	f.signIn(t, "reader")

	// Shelf in title order: Alpha, Beta, Delta.
	f.script(nil, console.Key2, console.KeyEnter)
	if err := f.app.TakeBook(); err != nil {
		t.Fatalf("TakeBook: %v", err)
	}
	b := f.book(t, "Beta")
	if b.InLibrary || b.LastReader != reader.ID {
		t.Fatalf("book not lent: %+v", b)
	}
	if u := f.user(t, "reader"); !u.Holds("Beta") {
		t.Fatalf("reader does not hold Beta: %+v", u)
	}

	f.script(nil, console.KeyEnter)
	if err := f.app.ReturnBook(); err != nil {
		t.Fatalf("ReturnBook: %v", err)
	}
	if b := f.book(t, "Beta"); !b.InLibrary || b.LastReader != reader.ID {
		t.Fatalf("book not returned: %+v", b)
	}
	if u := f.user(t, "reader"); len(u.TakenBooks) != 0 {
		t.Fatalf("reader still holds %v", u.TakenBooks)
	}
	if err := f.app.ReturnBook(); err == nil {
		t.Fatalf("expected an error when nothing is taken")
	}
}

// brokenAccounts fails every account write.
type brokenAccounts struct {
	store.Store
}

var errDiskFull = errors.New("disk full")

func (brokenAccounts) SaveUser(*model.User) error { return errDiskFull }

func TestTakeBook_FailedAccountSaveKeepsBookOnShelf(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.register(t, "reader", model.RoleUser)
	f.addBooks(t, shelf()...)
	f.signIn(t, "reader")
	f.app.store = brokenAccounts{f.store}

	f.script(nil, console.Key2, console.KeyEnter)
	if err := f.app.TakeBook(); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected errDiskFull, got %v", err)
	}
	if b := f.book(t, "Beta"); !b.InLibrary || b.LastReader != 0 {
		t.Fatalf("book must stay on the shelf: %+v", b)
	}
	if f.app.User().Holds("Beta") {
		t.Fatalf("signed in account must not hold Beta")
	}
}

func TestReturnBook_FailedAccountSaveKeepsLoan(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	reader := f.register(t, "reader", model.RoleUser)
	f.addBooks(t, shelf()...)
	f.signIn(t, "reader")
	f.script(nil, console.Key1, console.KeyEnter)
	if err := f.app.TakeBook(); err != nil {
		t.Fatalf("TakeBook: %v", err)
	}

	f.app.store = brokenAccounts{f.store}
	f.script(nil, console.KeyEnter)
	if err := f.app.ReturnBook(); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected errDiskFull, got %v", err)
	}
	if b := f.book(t, "Alpha"); b.InLibrary || b.LastReader != reader.ID {
		t.Fatalf("book must stay lent: %+v", b)
	}
	if !f.app.User().Holds("Alpha") {
		t.Fatalf("signed in account must still hold Alpha")
	}
}

func TestTakeBook_EmptyShelf(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.signIn(t, "root")
	f.addBooks(t, model.Book{Title: "Gone", Author: "X"})
	if err := f.app.TakeBook(); err == nil {
		t.Fatalf("expected an error for an empty shelf")
	}
}

func TestMyBooks_ListsHeldTitles(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "root", model.RoleAdmin)
	u.TakenBooks = []string{"Alpha", "Gamma"}
	if err := f.store.SaveUser(&u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	f.signIn(t, "root")
	if err := f.app.MyBooks(); err != nil {
		t.Fatalf("MyBooks: %v", err)
	}
	if !f.screen.Contains("1) Alpha") || !f.screen.Contains("2) Gamma") || !f.screen.Contains(u.ReaderID()) {
		t.Fatalf("unexpected list:\n%s", f.screen.Text())
	}
}

func TestMyBooks_PagesThroughLongList(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "root", model.RoleAdmin)
	for i := 1; i <= 30; i++ {
		u.TakenBooks = append(u.TakenBooks, fmt.Sprintf("Book %02d", i))
	}
	if err := f.store.SaveUser(&u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	f.signIn(t, "root")
	f.script(nil, console.KeyRight, console.KeyEnter)
	if err := f.app.MyBooks(); err != nil {
		t.Fatalf("MyBooks: %v", err)
	}
	if !f.screen.Contains("30) Book 30") || f.screen.Contains("Book 01") {
		t.Fatalf("second page not shown:\n%s", f.screen.Text())
	}
}

func TestAddBook(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.signIn(t, "root")
	f.script([]string{"Epsilon", "", "Author", "Pub", "2010", "320"})
	if err := f.app.AddBook(); err != nil {
		t.Fatalf("AddBook: %v", err)
	}
	b := f.book(t, "Epsilon")
	if b.Author != "Author" || b.Publisher != "Pub" || b.Year != 2010 || b.Pages != 320 || !b.InLibrary {
		t.Fatalf("unexpected book %+v", b)
	}

	p := f.script([]string{"Epsilon", "Other"})
	if err := f.app.AddBook(); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if p.Pending() != 1 {
		t.Fatalf("duplicate title should stop before the other fields")
	}

	f.script([]string{"Zeta", "A", "P", "-5"})
	if err := f.app.AddBook(); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestEditBook_RenameFollowsReaders(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	reader := f.register(t, "reader", model.RoleUser)
	f.addBooks(t, shelf()...)
	alpha := f.book(t, "Alpha")
	if err := model.Lend(&alpha, &reader); err != nil {
		t.Fatalf("Lend: %v", err)
	}
	_ = f.store.SaveBook(&alpha)
	_ = f.store.SaveUser(&reader)
	f.signIn(t, "root")

	// Alpha is the first row; Title is the first field.
	f.script([]string{"Omega"}, console.KeyEnter, console.KeyEnter)
	if err := f.app.EditBook(); err != nil {
		t.Fatalf("EditBook: %v", err)
	}
	if _, err := f.store.Book("Alpha"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("old title still present: %v", err)
	}
	if b := f.book(t, "Omega"); b.ID != alpha.ID || b.InLibrary {
		t.Fatalf("renamed book lost its state: %+v", b)
	}
	if u := f.user(t, "reader"); !u.Holds("Omega") || u.Holds("Alpha") {
		t.Fatalf("reader list not renamed: %v", u.TakenBooks)
	}
}

func TestEditBook_ChangesYear(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.addBooks(t, shelf()...)
	f.signIn(t, "root")
	// Beta is the second row; Year is the fourth field.
	f.script([]string{"1888"}, console.Key2, console.KeyEnter, console.Key4, console.KeyEnter)
	if err := f.app.EditBook(); err != nil {
		t.Fatalf("EditBook: %v", err)
	}
	if b := f.book(t, "Beta"); b.Year != 1888 {
		t.Fatalf("year = %d", b.Year)
	}
}

func TestDeleteBook(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.addBooks(t, shelf()...)
	f.signIn(t, "root")

	// Titles: Alpha, Beta, Delta, Gamma. Gamma is lent.
	f.script(nil, console.Key4, console.KeyEnter)
	if err := f.app.DeleteBook(); !errors.Is(err, ErrBookLent) {
		t.Fatalf("expected ErrBookLent, got %v", err)
	}

	f.script(nil, console.KeyEnter, console.Key2, console.KeyEnter)
	if err := f.app.DeleteBook(); err != nil {
		t.Fatalf("DeleteBook declined: %v", err)
	}
	f.book(t, "Alpha")

	f.script(nil, console.KeyEnter, console.KeyEnter)
	if err := f.app.DeleteBook(); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if _, err := f.store.Book("Alpha"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Alpha not deleted: %v", err)
	}
}

func TestAddUser_WithRole(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.signIn(t, "root")
	f.script([]string{"bob", "pw", "pw"}, console.Key2, console.KeyEnter)
	if err := f.app.AddUser(); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if u := f.user(t, "bob"); !u.IsAdmin() {
		t.Fatalf("bob should be an administrator: %+v", u)
	}
	if _, err := f.auth.Login("bob", security.FromString("pw")); err != nil {
		t.Fatalf("Login bob: %v", err)
	}

	f.script([]string{"carol", "pw", "other"})
	if err := f.app.AddUser(); err == nil {
		t.Fatalf("expected password mismatch error")
	}
}

func TestEditUser(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.register(t, "reader", model.RoleUser)
	f.signIn(t, "root")

	// Accounts in login order: reader, root.
	f.script(nil, console.Key2, console.KeyEnter, console.Key3, console.KeyEnter)
	if err := f.app.EditUser(); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}

	f.script(nil, console.KeyEnter, console.Key3, console.KeyEnter)
	if err := f.app.EditUser(); err != nil {
		t.Fatalf("EditUser role: %v", err)
	}
	if u := f.user(t, "reader"); !u.IsAdmin() {
		t.Fatalf("reader not promoted: %+v", u)
	}

	f.script([]string{"new", "new"}, console.KeyEnter, console.Key2, console.KeyEnter)
	if err := f.app.EditUser(); err != nil {
		t.Fatalf("EditUser password: %v", err)
	}
	if _, err := f.auth.Login("reader", security.FromString("new")); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	f.script([]string{"boss"}, console.Key2, console.KeyEnter, console.KeyEnter)
	if err := f.app.EditUser(); err != nil {
		t.Fatalf("EditUser login: %v", err)
	}
	if f.app.User().Login != "boss" {
		t.Fatalf("signed in account not renamed: %q", f.app.User().Login)
	}
	f.user(t, "boss")
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	reader := f.register(t, "reader", model.RoleUser)
	f.register(t, "zoe", model.RoleUser)
	f.signIn(t, "root")

	// Accounts in login order: reader, root, zoe.
	f.script(nil, console.Key2, console.KeyEnter)
	if err := f.app.DeleteUser(); !errors.Is(err, ErrDeleteSelf) {
		t.Fatalf("expected ErrDeleteSelf, got %v", err)
	}

	reader.TakenBooks = []string{"Alpha"}
	_ = f.store.SaveUser(&reader)
	f.script(nil, console.KeyEnter)
	if err := f.app.DeleteUser(); !errors.Is(err, ErrHoldsBooks) {
		t.Fatalf("expected ErrHoldsBooks, got %v", err)
	}

	f.script(nil, console.Key3, console.KeyEnter, console.KeyEnter)
	if err := f.app.DeleteUser(); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := f.store.User("zoe"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("zoe not deleted: %v", err)
	}
}

func TestViewUsers_ShowsDetails(t *testing.T) {
	f := newFixture(t)
	root := f.register(t, "root", model.RoleAdmin)
	root.TakenBooks = []string{"Alpha"}
	_ = f.store.SaveUser(&root)
	f.signIn(t, "root")
	f.script(nil, console.KeyEnter)
	if err := f.app.ViewUsers(); err != nil {
		t.Fatalf("ViewUsers: %v", err)
	}
	for _, want := range []string{"root", root.ReaderID(), "admin", "Alpha"} {
		if !f.screen.Contains(want) {
			t.Fatalf("missing %q:\n%s", want, f.screen.Text())
		}
	}
}

func TestBackup_WritesRestorableSnapshot(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.addBooks(t, shelf()...)
	f.signIn(t, "root")
	dir := t.TempDir()
	f.script([]string{filepath.Join(dir, "catalogue")})
	if err := f.app.Backup(); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	path := filepath.Join(dir, "catalogue"+backup.Extension)

	target, err := store.OpenJSON(filepath.Join(dir, "b.json"), filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	snap, err := backup.Restore(path, target)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(snap.Books) != len(shelf()) || len(snap.Users) != 1 {
		t.Fatalf("snapshot has %d books and %d users", len(snap.Books), len(snap.Users))
	}
}

func TestBackup_DefaultName(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.signIn(t, "root")
	chdir(t, t.TempDir())
	Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { Now = time.Now })
	f.script([]string{""})
	if err := f.app.Backup(); err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if _, err := os.Stat("librarian-backup-2026-03-01.json.zst"); err != nil {
		t.Fatalf("default backup missing: %v", err)
	}
}

func backupFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	orig := BackupDir
	BackupDir = dir
	t.Cleanup(func() { BackupDir = orig })
	return dir
}

func TestDeleteBackup(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.signIn(t, "root")
	dir := backupFiles(t, "a.zst", "b.json.zst", "notes.txt")

	// Pick b.json.zst, then answer no.
	f.script(nil, console.Key2, console.KeyEnter, console.Key2, console.KeyEnter)
	if err := f.app.DeleteBackup(); err != nil {
		t.Fatalf("DeleteBackup: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.json.zst")); err != nil {
		t.Fatalf("declined delete removed the file: %v", err)
	}

	f.script(nil, console.Key2, console.KeyEnter, console.Key1, console.KeyEnter)
	if err := f.app.DeleteBackup(); err != nil {
		t.Fatalf("DeleteBackup: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.json.zst")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("backup still present: %v", err)
	}
	for _, keep := range []string{"a.zst", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Fatalf("%s removed: %v", keep, err)
		}
	}
}

func TestDeleteBackup_NoFiles(t *testing.T) {
	f := newFixture(t)
	f.register(t, "root", model.RoleAdmin)
	f.signIn(t, "root")
	backupFiles(t, "notes.txt")
	if err := f.app.DeleteBackup(); err == nil {
		t.Fatalf("expected an error without backup files")
	}
}

func TestRun_BootstrapThenLeave(t *testing.T) {
	f := newFixture(t)
	f.script([]string{"root", "pw", "pw"}, console.KeyEscape)
	if err := f.app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !f.app.User().IsAdmin() {
		t.Fatalf("bootstrap account must be admin")
	}
}
