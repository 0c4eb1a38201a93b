package scheduler

import (
	"github.com/google/uuid"

	"vaccine-scheduler/internal/model"
)

// Session holds the identity logged in on this process, if any. The zero
// value is logged out. Only Login and Logout change it.
type Session struct {
	id       string
	role     model.Role
	username string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) LoggedIn() bool { return s.username != "" }

func (s *Session) Role() model.Role { return s.role }

func (s *Session) Username() string { return s.username }

// ID correlates log records of one login; empty when logged out.
func (s *Session) ID() string { return s.id }

func (s *Session) set(role model.Role, username string) {
	s.id = uuid.NewString()
	s.role = role
	s.username = username
}

func (s *Session) clear() {
	*s = Session{}
}

// Require returns the username when the session holds role.
func (s *Session) Require(role model.Role) (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	if s.role != role {
		return "", ErrWrongRole
	}
	return s.username, nil
}
