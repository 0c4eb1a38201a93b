// Package store defines the persistence contracts for the scheduler: the
// account credential store, the vaccine inventory ledger, the caregiver
// availability board and the appointment ledger.
//
// Implementations live in the postgres and sqlite subpackages. Every query
// they issue is parameterized.
package store

import (
	"context"
	"errors"
	"time"

	"vaccine-scheduler/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInsufficientDoses = errors.New("insufficient doses")
	ErrDoseLimit         = errors.New("dose count above limit")
)

type Accounts interface {
	// CreateAccount returns ErrDuplicate when role+username is taken.
	CreateAccount(ctx context.Context, a *model.Account) error
	AccountByUsername(ctx context.Context, role model.Role, username string) (*model.Account, error)
}

type Vaccines interface {
	VaccineByName(ctx context.Context, name string) (*model.Vaccine, error)
	CreateVaccine(ctx context.Context, name string, doses int) error
	// IncreaseDoses and DecreaseDoses return ErrInsufficientDoses when the
	// count would drop below zero, ErrDoseLimit when it would pass
	// model.MaxDoses and ErrNotFound for an unknown vaccine.
	IncreaseDoses(ctx context.Context, name string, delta int) error
	DecreaseDoses(ctx context.Context, name string, delta int) error
	ListVaccines(ctx context.Context) ([]model.Vaccine, error)
}

type Availabilities interface {
	// AddAvailability is idempotent per (date, caregiver).
	AddAvailability(ctx context.Context, date time.Time, caregiver string) error
	// FirstCaregiverOn returns the lexicographically smallest caregiver
	// available on date, or ErrNotFound.
	FirstCaregiverOn(ctx context.Context, date time.Time) (string, error)
	CaregiversOn(ctx context.Context, date time.Time) ([]string, error)
	RemoveAvailability(ctx context.Context, date time.Time, caregiver string) error
}

type Appointments interface {
	// NextAppointmentID never hands out an id that was used before, even
	// after the appointment holding it has been deleted.
	NextAppointmentID(ctx context.Context) (int64, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error)
	AppointmentsByPatient(ctx context.Context, username string) ([]model.Appointment, error)
	AppointmentsByCaregiver(ctx context.Context, username string) ([]model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

// Repo is everything a workflow can read or write, either directly or
// inside a transaction.
type Repo interface {
	Accounts
	Vaccines
	Availabilities
	Appointments
}

type Store interface {
	Repo
	// InTx runs fn in a single transaction. The transaction commits only if
	// fn returns nil; any error rolls back every write fn made.
	InTx(ctx context.Context, fn func(Repo) error) error
	Close() error
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
