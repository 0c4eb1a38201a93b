// Package scheduler is the workflow controller: it owns the login session
// rules and runs the reserve and cancel sequences across the inventory,
// availability and appointment ledgers as single transactions.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vaccine-scheduler/internal/auth"
	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/ratelimit"
	"vaccine-scheduler/internal/store"
)

type Service struct {
	store   store.Store
	limiter *ratelimit.Limiter
	log     zerolog.Logger
}

type Option func(*Service)

func WithLimiter(l *ratelimit.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PasswordPrompt is asked for a replacement password after a rejected one.
// problems lists the unmet policy rules. Returning an error aborts.
type PasswordPrompt func(problems []string) (string, error)

// Register creates an account. Weak passwords are handed to retry until one
// passes the policy; with a nil retry they fail with ErrWeakPassword.
func (s *Service) Register(ctx context.Context, role model.Role, username, password string, retry PasswordPrompt) (*model.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if _, err := s.store.AccountByUsername(ctx, role, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	for {
		problems := auth.PasswordProblems(password)
		if len(problems) == 0 {
			break
		}
		if retry == nil {
			return nil, ErrWeakPassword
		}
		next, err := retry(problems)
		if err != nil {
			return nil, err
		}
		password = next
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return nil, err
	}
	a := &model.Account{
		Role:     role,
		Username: username,
		Salt:     salt,
		Hash:     auth.HashPassword(password, salt),
	}
	if err := s.store.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	s.log.Info().Str("role", string(role)).Str("username", username).Msg("account created")
	return a, nil
}

// Login authenticates and binds the identity to sess. Unknown user and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, sess *Session, role model.Role, username, password string) error {
	if sess.LoggedIn() {
		return ErrAlreadyLoggedIn
	}
	key := string(role) + ":" + username
	if !s.limiter.Allow(key) {
		return ErrTooManyAttempts
	}

	a, err := s.store.AccountByUsername(ctx, role, username)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	if !auth.CheckPassword(a.Hash, a.Salt, password) {
		return ErrInvalidCredentials
	}

	s.limiter.Reset(key)
	sess.set(role, username)
	s.log.Info().Str("session", sess.ID()).Str("role", string(role)).Str("username", username).Msg("logged in")
	return nil
}

func (s *Service) Logout(sess *Session) error {
	if !sess.LoggedIn() {
		return ErrNotLoggedIn
	}
	s.log.Info().Str("session", sess.ID()).Msg("logged out")
	sess.clear()
	return nil
}

// ParseDate accepts YYYY-MM-DD calendar dates only.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
