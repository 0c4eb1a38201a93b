package scheduler

import "errors"

// Workflow failures. Anything else returned by a Service method is a
// storage error.
var (
	ErrDuplicateUsername  = errors.New("username taken")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrAlreadyLoggedIn    = errors.New("already logged in")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrWrongRole          = errors.New("wrong role for this operation")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidDoses       = errors.New("dose count must be a non-negative integer within the stock limit")
	ErrNoAvailability     = errors.New("no caregiver available")
	ErrNoSuchVaccine      = errors.New("no such vaccine")
	ErrInsufficientDoses  = errors.New("not enough available doses")
	ErrNoSuchAppointment  = errors.New("no such appointment")
	ErrNotOwner           = errors.New("appointment belongs to someone else")
)
