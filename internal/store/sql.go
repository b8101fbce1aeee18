// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// BookModel maps the books table.
type BookModel struct {
	bun.BaseModel `bun:"table:books"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Title         string `bun:"title,notnull,unique"`
	Author        string `bun:"author"`
	Publisher     string `bun:"publisher"`
	Year          int    `bun:"year"`
	Pages         int    `bun:"pages"`
	InLibrary     bool   `bun:"in_library"`
	LastReader    int64  `bun:"last_reader"`
}

// UserModel maps the users table. Taken books are stored as a JSON array.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`
	ID            int64    `bun:"id,pk,autoincrement"`
	Login         string   `bun:"login,notnull,unique"`
	PasswordHash  string   `bun:"password_hash"`
	Role          string   `bun:"role"`
	TakenBooks    []string `bun:"taken_books"`
}

func bookModelToModel(m BookModel) model.Book {
	return model.Book{
		ID: m.ID, Title: m.Title, Author: m.Author, Publisher: m.Publisher,
		Year: m.Year, Pages: m.Pages, InLibrary: m.InLibrary, LastReader: m.LastReader,
	}
}

func bookToModel(b model.Book) *BookModel {
	return &BookModel{
		ID: b.ID, Title: b.Title, Author: b.Author, Publisher: b.Publisher,
		Year: b.Year, Pages: b.Pages, InLibrary: b.InLibrary, LastReader: b.LastReader,
	}
}

func userModelToModel(m UserModel) model.User {
	return model.User{ID: m.ID, Login: m.Login, PasswordHash: m.PasswordHash, Role: model.Role(m.Role), TakenBooks: m.TakenBooks}
}

func userToModel(u model.User) *UserModel {
	return &UserModel{ID: u.ID, Login: u.Login, PasswordHash: u.PasswordHash, Role: string(u.Role), TakenBooks: u.TakenBooks}
}

// SQLStore is the bun-backed Store for SQLite, PostgreSQL and MySQL.
type SQLStore struct {
	bun *bun.DB
}

var _ Store = (*SQLStore)(nil)

// OpenSQL connects to dbType ("sqlite", "postgres" or "mysql") and creates
// the tables if they do not exist yet.
func OpenSQL(dbType, dsn string) (*SQLStore, error) {
	driverName := dbType
	// The pgx stdlib registers driver name "pgx".
	if dbType == "postgres" {
		driverName = "pgx"
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to an in-memory SQLite database sees its own empty
	// database.
	if dbType == "sqlite" && (dsn == ":memory:" || strings.Contains(dsn, "mode=memory")) {
		sqlDB.SetMaxOpenConns(1)
	}
	bunDB, err := createBunDB(sqlDB, dbType)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	s := &SQLStore{bun: bunDB}
	if err := s.createTables(context.Background()); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	logging.Debugf("store: opened %s database in %s", dbType, time.Since(start))
	return s, nil
}

func createBunDB(sqlDB *sql.DB, dbType string) (*bun.DB, error) {
	switch dbType {
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

func (s *SQLStore) createTables(ctx context.Context) error {
	for _, m := range []any{(*BookModel)(nil), (*UserModel)(nil)} {
		if _, err := s.bun.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Books() ([]model.Book, error) {
	ctx := context.Background()
	var bm []BookModel
	if err := s.bun.NewSelect().Model(&bm).Order("title").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Book, 0, len(bm))
	for _, b := range bm {
		out = append(out, bookModelToModel(b))
	}
	return out, nil
}

func (s *SQLStore) Book(title string) (model.Book, error) {
	ctx := context.Background()
	var bm BookModel
	err := s.bun.NewSelect().Model(&bm).Where("title = ?", title).Limit(1).Scan(ctx)
	if err != nil {
		return model.Book{}, fmt.Errorf("book %q: %w", title, MapDBError(err))
	}
	return bookModelToModel(bm), nil
}

func (s *SQLStore) SaveBook(b *model.Book) error {
	if b.Title == "" {
		return errors.New("book title must not be empty")
	}
	ctx := context.Background()
	m := bookToModel(*b)
	if b.ID == 0 {
		if _, err := s.bun.NewInsert().Model(m).Exec(ctx); err != nil {
			return fmt.Errorf("book %q: %w", b.Title, MapDBError(err))
		}
		b.ID = m.ID
		return nil
	}
	res, err := s.bun.NewUpdate().Model(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("book %q: %w", b.Title, MapDBError(err))
	}
	return s.requireUpdated(ctx, res, (*BookModel)(nil), b.ID, fmt.Sprintf("book #%d", b.ID))
}

func (s *SQLStore) DeleteBook(title string) error {
	ctx := context.Background()
	res, err := s.bun.NewDelete().Model((*BookModel)(nil)).Where("title = ?", title).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, fmt.Sprintf("book %q", title))
}

func (s *SQLStore) Users() ([]model.User, error) {
	ctx := context.Background()
	var um []UserModel
	if err := s.bun.NewSelect().Model(&um).Order("login").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(um))
	for _, u := range um {
		out = append(out, userModelToModel(u))
	}
	return out, nil
}

func (s *SQLStore) User(login string) (model.User, error) {
	ctx := context.Background()
	var um UserModel
	err := s.bun.NewSelect().Model(&um).Where("login = ?", login).Limit(1).Scan(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("account %q: %w", login, MapDBError(err))
	}
	return userModelToModel(um), nil
}

func (s *SQLStore) SaveUser(u *model.User) error {
	if u.Login == "" {
		return errors.New("login must not be empty")
	}
	ctx := context.Background()
	m := userToModel(*u)
	if u.ID == 0 {
		if _, err := s.bun.NewInsert().Model(m).Exec(ctx); err != nil {
			return fmt.Errorf("account %q: %w", u.Login, MapDBError(err))
		}
		u.ID = m.ID
		return nil
	}
	res, err := s.bun.NewUpdate().Model(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("account %q: %w", u.Login, MapDBError(err))
	}
	return s.requireUpdated(ctx, res, (*UserModel)(nil), u.ID, fmt.Sprintf("account #%d", u.ID))
}

func (s *SQLStore) DeleteUser(login string) error {
	ctx := context.Background()
	res, err := s.bun.NewDelete().Model((*UserModel)(nil)).Where("login = ?", login).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, fmt.Sprintf("account %q", login))
}

func (s *SQLStore) RenameUser(oldLogin, newLogin string) error {
	ctx := context.Background()
	res, err := s.bun.NewUpdate().Model((*UserModel)(nil)).
		Set("login = ?", newLogin).
		Where("login = ?", oldLogin).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("account %q: %w", newLogin, MapDBError(err))
	}
	return requireRow(res, fmt.Sprintf("account %q", oldLogin))
}

func (s *SQLStore) Close() error { return s.bun.Close() }

// requireUpdated is requireRow for updates by id. MySQL reports unchanged
// rows as unaffected, so a zero count is confirmed with a lookup.
func (s *SQLStore) requireUpdated(ctx context.Context, res sql.Result, m any, id int64, what string) error {
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	ok, err := s.bun.NewSelect().Model(m).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// requireRow turns an update or delete that touched nothing into ErrNotFound.
func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
