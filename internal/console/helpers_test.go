// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console_test

import (
	"fmt"

	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/console/consoletest"
)

// testConfig keeps rendering independent of the active locale.
func testConfig() console.Config {
	cfg := console.DefaultConfig()
	cfg.PageStatus = func(page, total int) string { return fmt.Sprintf("page %d of %d", page, total) }
	cfg.EmptyMessage = func() string { return "nothing to show" }
	return cfg
}

func books(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("Book %02d", i+1)
	}
	return rows
}

// screenFor returns a 40 column screen whose page capacity is capacity.
func screenFor(capacity int, keys ...console.Key) *consoletest.Screen {
	return consoletest.New(40, capacity+3, keys...)
}
