// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/toeirei/librarian/internal/auth"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/internal/security"
	"golang.org/x/term"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage reader accounts",
	}
	cmd.AddCommand(newUserAddCmd(), newUserListCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "add <login>",
		Short: "Create an account",
		Long: `Creates an account. The password is read from the terminal, or as the
first line of standard input when it is not a terminal. The very first
account is always an administrator.

Example:
  librarian user add alice --admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			defer password.Zero()
			role := model.RoleUser
			if admin {
				role = model.RoleAdmin
			}
			u, err := auth.New(appStore).Register(args[0], password, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("library.user_added", u.Login, u.ReaderID()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "Give the account administrator rights")
	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := appStore.Users()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join([]string{"Login", model.ColumnID, model.ColumnRole, model.ColumnTaken}, "\t"))
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", u.Login, u.ReaderID(), u.Role, len(u.TakenBooks))
			}
			return w.Flush()
		},
	}
}

// readPassword reads a password without echo from a terminal, or one line
// from any other input.
func readPassword(cmd *cobra.Command) (security.Secret, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), i18n.T("prompt.password")+" ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		return security.Secret(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return security.FromString(strings.TrimRight(line, "\r\n")), nil
}
