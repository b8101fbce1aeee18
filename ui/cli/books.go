// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/model"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Inspect the catalogue without the interactive menu",
	}
	cmd.AddCommand(newBooksListCmd(), newBooksPickCmd())
	return cmd
}

func newBooksListCmd() *cobra.Command {
	var sortBy string
	var desc, available bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalogue as a table",
		Long: `Prints every book. Use --sort with a column name to order the output
and --available to show only the books on the shelf.

Example:
  librarian books list --sort Year --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalogueTable(nil, available)
			if err != nil {
				return err
			}
			if sortBy != "" {
				dir := console.Ascending
				if desc {
					dir = console.Descending
				}
				if err := t.Sort(sortBy, dir); err != nil {
					return fmt.Errorf("%w (columns: %s)", err, strings.Join(model.BookColumns, ", "))
				}
			}
			return printBooks(cmd, t.Records())
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort in descending order")
	cmd.Flags().BoolVar(&available, "available", false, "Only books that are in the library")
	return cmd
}

func newBooksPickCmd() *cobra.Command {
	var copyTitle, available bool
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a book interactively and print its title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			surface, err := openTerminal()
			if err != nil {
				return err
			}
			t, err := catalogueTable(surface, available)
			if err != nil {
				return err
			}
			title, err := t.Pick()
			surface.Clear()
			if err != nil {
				return err
			}
			if copyTitle {
				if err := copyToClipboard(title); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.copied", title))
			}
			fmt.Fprintln(cmd.OutOrStdout(), title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyTitle, "copy", false, "Copy the title to the clipboard")
	cmd.Flags().BoolVar(&available, "available", false, "Only books that are in the library")
	return cmd
}

// catalogueTable loads the books into a table drawing on surface. A nil
// surface is fine for tables that are only sorted and read.
func catalogueTable(surface console.Surface, available bool) (*console.Table, error) {
	books, err := appStore.Books()
	if err != nil {
		return nil, err
	}
	if available {
		books = slices.DeleteFunc(books, func(b model.Book) bool { return !b.InLibrary })
	}
	return console.NewTable(surface, appConfig.ConsoleConfig(), model.BookRecords(books)), nil
}

func printBooks(cmd *cobra.Command, records []console.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("console.empty_list"))
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(model.BookColumns, "\t"))
	for _, r := range records {
		cells := make([]string, len(model.BookColumns))
		for i, col := range model.BookColumns {
			cells[i] = console.FormatValue(r[col])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}
