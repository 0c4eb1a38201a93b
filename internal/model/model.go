package model

import (
	"math"
	"time"
)

type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleCaregiver
}

// Account is a registered patient or caregiver. Usernames are unique per role.
type Account struct {
	Role     Role
	Username string
	Salt     []byte
	Hash     []byte
}

type Vaccine struct {
	Name  string
	Doses int
}

// MaxDoses bounds a vaccine's stock so it fits a PostgreSQL INTEGER column.
const MaxDoses = math.MaxInt32

type Appointment struct {
	ID        int64
	Patient   string
	Caregiver string
	Vaccine   string
	Date      time.Time
}

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"
