package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
	"vaccine-scheduler/internal/store/postgres"
)

func setup(t *testing.T) *postgres.Store {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	st, err := postgres.Open(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// unique names keep runs against a shared database independent
func name(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// a random far-future day nobody else books
func freshDay() time.Time {
	u := uuid.New()
	return time.Date(2100+int(u[0]), time.Month(1+int(u[1])%12), 1+int(u[2])%28, 0, 0, 0, 0, time.UTC)
}

func TestAccounts(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	user := name("bob")

	a := &model.Account{Role: model.RolePatient, Username: user, Salt: []byte("salt"), Hash: []byte("hash")}
	require.NoError(t, st.CreateAccount(ctx, a))
	assert.ErrorIs(t, st.CreateAccount(ctx, a), store.ErrDuplicate)

	c := &model.Account{Role: model.RoleCaregiver, Username: user, Salt: []byte("s"), Hash: []byte("h")}
	require.NoError(t, st.CreateAccount(ctx, c))

	got, err := st.AccountByUsername(ctx, model.RolePatient, user)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = st.AccountByUsername(ctx, model.RolePatient, name("nobody"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVaccineDoses(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	vax := name("vax")

	require.NoError(t, st.CreateVaccine(ctx, vax, 1))
	assert.ErrorIs(t, st.CreateVaccine(ctx, vax, 1), store.ErrDuplicate)
	require.NoError(t, st.DecreaseDoses(ctx, vax, 1))
	assert.ErrorIs(t, st.DecreaseDoses(ctx, vax, 1), store.ErrInsufficientDoses)
	require.NoError(t, st.IncreaseDoses(ctx, vax, 5))
	assert.ErrorIs(t, st.IncreaseDoses(ctx, name("missing"), 1), store.ErrNotFound)

	v, err := st.VaccineByName(ctx, vax)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Doses)
}

func TestVaccineDoseLimit(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	vax := name("vax")

	assert.ErrorIs(t, st.CreateVaccine(ctx, name("huge"), model.MaxDoses+1), store.ErrDoseLimit)
	require.NoError(t, st.CreateVaccine(ctx, vax, model.MaxDoses-1))
	require.NoError(t, st.IncreaseDoses(ctx, vax, 1))
	assert.ErrorIs(t, st.IncreaseDoses(ctx, vax, 1), store.ErrDoseLimit)
	assert.ErrorIs(t, st.IncreaseDoses(ctx, vax, model.MaxDoses+1), store.ErrDoseLimit)

	v, err := st.VaccineByName(ctx, vax)
	require.NoError(t, err)
	assert.Equal(t, model.MaxDoses, v.Doses)
}

func TestAvailabilityTieBreak(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	day := freshDay()
	first, second := name("a"), name("b")

	require.NoError(t, st.AddAvailability(ctx, day, second))
	require.NoError(t, st.AddAvailability(ctx, day, first))
	require.NoError(t, st.AddAvailability(ctx, day, first))

	got, err := st.FirstCaregiverOn(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	all, err := st.CaregiversOn(ctx, day)
	require.NoError(t, err)
	assert.Contains(t, all, first)
	assert.Contains(t, all, second)

	require.NoError(t, st.RemoveAvailability(ctx, day, first))
	require.NoError(t, st.RemoveAvailability(ctx, day, second))
	assert.ErrorIs(t, st.RemoveAvailability(ctx, day, first), store.ErrNotFound)
}

func TestAppointmentLifecycle(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	vax := name("vax")
	require.NoError(t, st.CreateVaccine(ctx, vax, 3))

	var a *model.Appointment
	err := st.InTx(ctx, func(r store.Repo) error {
		id, err := r.NextAppointmentID(ctx)
		if err != nil {
			return err
		}
		a = &model.Appointment{ID: id, Patient: name("p"), Caregiver: name("c"), Vaccine: vax, Date: freshDay()}
		return r.CreateAppointment(ctx, a)
	})
	require.NoError(t, err)

	got, err := st.AppointmentByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	list, err := st.AppointmentsByPatient(ctx, a.Patient)
	require.NoError(t, err)
	assert.Equal(t, []model.Appointment{*a}, list)

	require.NoError(t, st.DeleteAppointment(ctx, a.ID))
	next, err := st.NextAppointmentID(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, a.ID)
}

func TestInTxRollback(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	vax := name("vax")
	boom := errors.New("boom")

	err := st.InTx(ctx, func(r store.Repo) error {
		if err := r.CreateVaccine(ctx, vax, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = st.VaccineByName(ctx, vax)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
