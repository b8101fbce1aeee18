// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "github.com/toeirei/librarian/internal/console"

// Column names of the catalogue tables. The title column is the console's
// synthetic one.
const (
	ColumnTitle      = console.TitleColumn
	ColumnAuthor     = "Author"
	ColumnPublisher  = "Publisher"
	ColumnYear       = "Year"
	ColumnPages      = "Pages"
	ColumnInLibrary  = "In library"
	ColumnLastReader = "Last reader"
	ColumnID         = "ID"
	ColumnRole       = "Role"
	ColumnTaken      = "Taken books"
)

// BookColumns lists the sortable book columns in display order.
var BookColumns = []string{ColumnTitle, ColumnAuthor, ColumnInLibrary, ColumnLastReader, ColumnPages, ColumnPublisher, ColumnYear}

func BookRecord(b Book) console.Record {
	return console.Record{
		ColumnTitle:      b.Title,
		ColumnAuthor:     b.Author,
		ColumnPublisher:  b.Publisher,
		ColumnYear:       b.Year,
		ColumnPages:      b.Pages,
		ColumnInLibrary:  b.InLibrary,
		ColumnLastReader: FormatReaderID(b.LastReader),
	}
}

func BookRecords(books []Book) []console.Record {
	out := make([]console.Record, len(books))
	for i, b := range books {
		out[i] = BookRecord(b)
	}
	return out
}

// UserRecord never exposes the password hash. Taken books render as their
// count.
func UserRecord(u User) console.Record {
	taken := u.TakenBooks
	if taken == nil {
		taken = []string{}
	}
	return console.Record{
		ColumnTitle: u.Login,
		ColumnID:    u.ReaderID(),
		ColumnRole:  string(u.Role),
		ColumnTaken: taken,
	}
}

func UserRecords(users []User) []console.Record {
	out := make([]console.Record, len(users))
	for i, u := range users {
		out[i] = UserRecord(u)
	}
	return out
}
