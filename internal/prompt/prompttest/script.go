// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prompttest provides a scripted prompt.Prompter for tests.
package prompttest

import (
	"github.com/toeirei/librarian/internal/prompt"
	"github.com/toeirei/librarian/internal/security"
)

// Script answers prompts with canned values in order. Once the answers run
// out every prompt is cancelled.
type Script struct {
	answers []string
	// Labels records every label asked for.
	Labels []string
}

var _ prompt.Prompter = (*Script)(nil)

func New(answers ...string) *Script {
	return &Script{answers: answers}
}

// Pending returns the number of unused answers.
func (s *Script) Pending() int { return len(s.answers) }

func (s *Script) next(label string) (string, error) {
	s.Labels = append(s.Labels, label)
	if len(s.answers) == 0 {
		return "", prompt.ErrCancelled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *Script) Ask(label string) (string, error) {
	return s.next(label)
}

func (s *Script) AskSecret(label string) (security.Secret, error) {
	a, err := s.next(label)
	if err != nil {
		return nil, err
	}
	return security.FromString(a), nil
}

func (s *Script) AskInt(label string) (int, error) {
	a, err := s.next(label)
	if err != nil {
		return 0, err
	}
	return prompt.ParseInt(a)
}
