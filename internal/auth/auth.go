// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package auth registers accounts and checks passwords. Passwords are stored
// as bcrypt hashes.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/model"
	"github.com/toeirei/librarian/internal/security"
	"github.com/toeirei/librarian/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials hides whether the login or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrEmptyLogin         = errors.New("login must not be empty")
	ErrEmptyPassword      = errors.New("password must not be empty")
	// ErrForbidden is returned for administrator operations run by a user.
	ErrForbidden = errors.New("administrator rights required")
)

// Service authenticates against a Store.
type Service struct {
	store store.Store
	cost  int
}

// New creates a Service using bcrypt.DefaultCost.
func New(s store.Store) *Service {
	return &Service{store: s, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy of the service hashing with cost. Tests use
// bcrypt.MinCost.
func (a *Service) WithCost(cost int) *Service {
	c := *a
	c.cost = cost
	return &c
}

// NeedsBootstrap reports whether no account exists yet.
func (a *Service) NeedsBootstrap() (bool, error) {
	users, err := a.store.Users()
	if err != nil {
		return false, err
	}
	return len(users) == 0, nil
}

// Register creates an account. The very first account is always an
// administrator regardless of role.
func (a *Service) Register(login string, password security.Secret, role model.Role) (model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return model.User{}, ErrEmptyLogin
	}
	if !role.Valid() {
		return model.User{}, fmt.Errorf("unknown role %q", role)
	}
	first, err := a.NeedsBootstrap()
	if err != nil {
		return model.User{}, err
	}
	if first {
		role = model.RoleAdmin
	}
	hash, err := a.hash(password)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{Login: login, PasswordHash: hash, Role: role}
	if err := a.store.SaveUser(&u); err != nil {
		return model.User{}, err
	}
	logging.Infof("auth: registered %s account %q", u.Role, u.Login)
	return u, nil
}

// Login returns the account when password matches.
func (a *Service) Login(login string, password security.Secret) (model.User, error) {
	u, err := a.store.User(strings.TrimSpace(login))
	if errors.Is(err, store.ErrNotFound) {
		logging.Warnf("auth: login attempt for unknown account %q", login)
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	if err := password.Use(func(p []byte) error {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), p)
	}); err != nil {
		logging.Warnf("auth: wrong password for %q", u.Login)
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SetPassword replaces the password of login.
func (a *Service) SetPassword(login string, password security.Secret) error {
	u, err := a.store.User(login)
	if err != nil {
		return err
	}
	hash, err := a.hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return a.store.SaveUser(&u)
}

func (a *Service) hash(password security.Secret) (string, error) {
	if password.Empty() {
		return "", ErrEmptyPassword
	}
	var hash []byte
	err := password.Use(func(p []byte) error {
		var err error
		hash, err = bcrypt.GenerateFromPassword(p, a.cost)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// RequireAdmin returns ErrForbidden unless u is an administrator.
func RequireAdmin(u model.User) error {
	if !u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
