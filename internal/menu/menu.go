// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package menu runs numbered action menus on the console.
package menu

import (
	"errors"

	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/prompt"
	"github.com/toeirei/librarian/util/slicest"
)

// Action is one menu entry.
type Action struct {
	Label string
	Run   func() error
}

// Compose concatenates groups of actions into one menu.
func Compose(groups ...[]Action) []Action {
	var out []Action
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Labels returns the label of every action.
func Labels(actions []Action) []string {
	return slicest.Map(actions, func(a Action) string { return a.Label })
}

// Loop shows actions until the menu is cancelled with Escape or the user
// presses Escape after an action finished. Errors returned by actions are
// shown and logged; they do not end the loop.
func Loop(c *console.Console, title string, actions []Action) error {
	labels := Labels(actions)
	for {
		i, err := c.Select(labels, console.ListOptions{Enumerate: true, Header: title})
		if errors.Is(err, console.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		c.Screen(actions[i].Label)
		if err := actions[i].Run(); err != nil {
			Report(c, err)
		}
		c.Writeln(i18n.T("menu.continue"))
		if c.WaitKey() == console.KeyEscape {
			return nil
		}
	}
}

// Report shows err on the console. Cancellations are shown as a warning and
// empty lists have already printed their own message.
func Report(c *console.Console, err error) {
	switch {
	case errors.Is(err, console.ErrEmptyInput):
		c.Writeln("")
	case errors.Is(err, console.ErrCancelled), errors.Is(err, prompt.ErrCancelled):
		c.Warning(i18n.T("menu.cancelled"))
	default:
		logging.Errorf("menu: %v", err)
		c.Error(err.Error())
	}
}
