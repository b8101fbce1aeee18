// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(m inputModel, text string) inputModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(inputModel)
}

func TestInputModel_EnterCommits(t *testing.T) {
	m := typeInto(newInputModel("|", "Title:", false, nil), "Dune")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(inputModel)
	if !m.done || m.cancelled || cmd == nil {
		t.Fatalf("enter must finish the prompt: %+v", m)
	}
	if m.input.Value() != "Dune" {
		t.Fatalf("value = %q", m.input.Value())
	}
	if !strings.HasPrefix(m.View(), "|") || !strings.Contains(m.View(), "Title:") {
		t.Fatalf("view = %q", m.View())
	}
}

func TestInputModel_EscapeCancels(t *testing.T) {
	m := typeInto(newInputModel("", "Title:", false, nil), "x")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(inputModel)
	if !m.cancelled || cmd == nil {
		t.Fatalf("escape must cancel the prompt")
	}
}

func TestInputModel_ValidationKeepsPromptOpen(t *testing.T) {
	m := typeInto(newInputModel("", "Year:", false, validateInt), "19x")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(inputModel)
	if m.done || cmd != nil || m.err == nil {
		t.Fatalf("invalid number must keep the prompt open: %+v", m)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(inputModel)
	if m.err != nil {
		t.Fatalf("editing must clear the error")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m = next.(inputModel); !m.done {
		t.Fatalf("valid number must be accepted, value %q", m.input.Value())
	}
}

func TestInputModel_SecretIsMasked(t *testing.T) {
	m := typeInto(newInputModel("", "Password:", true, nil), "hunter2")
	if strings.Contains(m.View(), "hunter2") {
		t.Fatalf("secret echoed in view: %q", m.View())
	}
}

func TestParseInt(t *testing.T) {
	if n, err := ParseInt(" 1999 "); err != nil || n != 1999 {
		t.Fatalf("ParseInt = %d, %v", n, err)
	}
	if _, err := ParseInt("abc"); err == nil {
		t.Fatalf("expected an error")
	}
}
