// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prompt asks the user for single values: text, numbers and
// passwords. The terminal implementation runs a small bubbletea program
// inline, on the line the console cursor is on.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/security"
)

// ErrCancelled is returned when the user leaves a prompt with Escape.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter is what screens use to read values.
type Prompter interface {
	Ask(label string) (string, error)
	AskSecret(label string) (security.Secret, error)
	AskInt(label string) (int, error)
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	inputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// inputModel is the bubbletea model of one prompt.
type inputModel struct {
	margin    string
	label     string
	input     textinput.Model
	validate  func(string) error
	err       error
	done      bool
	cancelled bool
}

func newInputModel(margin, label string, secret bool, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.TextStyle = inputStyle
	ti.Cursor.Style = inputStyle
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	ti.Focus()
	return inputModel{margin: margin, label: label, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
		m.err = nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	line := m.margin + labelStyle.Render(m.label) + " " + m.input.View()
	if m.err != nil && !m.done {
		line += " " + errStyle.Render(m.err.Error())
	}
	return line
}

// Terminal prompts on a real terminal below the console cursor.
type Terminal struct {
	in      io.Reader
	out     io.Writer
	surface console.Surface
	margin  string
}

var _ Prompter = (*Terminal)(nil)

// New creates a Terminal prompter. Prompts start at the surface cursor and
// are prefixed with the frame's vertical border so they sit inside it.
func New(in io.Reader, out io.Writer, surface console.Surface, cfg console.Config) *Terminal {
	margin := ""
	if cfg.Borders.Vertical != 0 {
		margin = string(cfg.Borders.Vertical)
	}
	return &Terminal{in: in, out: out, surface: surface, margin: margin}
}

func (t *Terminal) run(m inputModel) (inputModel, error) {
	_, y := t.surface.CursorPosition()
	t.surface.MoveCursor(0, y)
	final, err := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out)).Run()
	_, h := t.surface.Size()
	t.surface.MoveCursor(1, min(y+1, max(h-console.BorderPadding, 1)))
	if err != nil {
		return m, fmt.Errorf("prompt: %w", err)
	}
	fm := final.(inputModel)
	if fm.cancelled {
		return fm, ErrCancelled
	}
	return fm, nil
}

func (t *Terminal) Ask(label string) (string, error) {
	m, err := t.run(newInputModel(t.margin, label, false, nil))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(m.input.Value()), nil
}

func (t *Terminal) AskSecret(label string) (security.Secret, error) {
	m, err := t.run(newInputModel(t.margin, label, true, nil))
	if err != nil {
		return nil, err
	}
	return security.FromString(m.input.Value()), nil
}

func (t *Terminal) AskInt(label string) (int, error) {
	m, err := t.run(newInputModel(t.margin, label, false, validateInt))
	if err != nil {
		return 0, err
	}
	return ParseInt(m.input.Value())
}

func validateInt(s string) error {
	_, err := ParseInt(s)
	return err
}

// ParseInt parses a whole number typed by the user.
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(i18n.T("prompt.not_a_number"))
	}
	return n, nil
}
