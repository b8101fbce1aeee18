// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security holds helpers for handling passwords in memory.
package security

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret holds a password typed by the user. Formatting and JSON encoding
// never reveal it.
type Secret []byte

func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so every verb is redacted.
func (s Secret) Format(f fmt.State, c rune) {
	_, _ = io.WriteString(f, redacted)
}

// Bytes returns a copy of the underlying bytes.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Zero overwrites the secret in place.
func (s *Secret) Zero() {
	if s == nil {
		return
	}
	clear(*s)
}

// Use executes fn with the underlying bytes (not a copy).
func (s Secret) Use(fn func([]byte) error) error {
	return fn([]byte(s))
}

// Empty reports whether nothing was entered.
func (s Secret) Empty() bool { return len(s) == 0 }

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// FromString wraps in; callers should drop their copy of the string.
func FromString(in string) Secret { return Secret([]byte(in)) }
