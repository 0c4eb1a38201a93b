package scheduler

import (
	"context"
	"errors"
	"fmt"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

// Reserve books vaccine on rawDate for the logged-in patient with the first
// available caregiver (smallest username). Every check runs before the
// first write, and all writes share one transaction: on any failure nothing
// changes.
func (s *Service) Reserve(ctx context.Context, sess *Session, rawDate, vaccine string) (*model.Appointment, error) {
	patient, err := sess.Require(model.RolePatient)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}

	var appt *model.Appointment
	err = s.store.InTx(ctx, func(r store.Repo) error {
		caregiver, err := r.FirstCaregiverOn(ctx, d)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoAvailability
		}
		if err != nil {
			return err
		}

		v, err := r.VaccineByName(ctx, vaccine)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSuchVaccine
		}
		if err != nil {
			return err
		}
		if v.Doses <= 0 {
			return ErrInsufficientDoses
		}

		id, err := r.NextAppointmentID(ctx)
		if err != nil {
			return err
		}
		if err := r.RemoveAvailability(ctx, d, caregiver); err != nil {
			return fmt.Errorf("remove availability: %w", err)
		}
		if err := r.DecreaseDoses(ctx, v.Name, 1); err != nil {
			if errors.Is(err, store.ErrInsufficientDoses) {
				return ErrInsufficientDoses
			}
			return fmt.Errorf("decrease doses: %w", err)
		}

		a := &model.Appointment{ID: id, Patient: patient, Caregiver: caregiver, Vaccine: v.Name, Date: d}
		if err := r.CreateAppointment(ctx, a); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("session", sess.ID()).Int64("appointment", appt.ID).
		Str("caregiver", appt.Caregiver).Str("vaccine", appt.Vaccine).Msg("appointment reserved")
	return appt, nil
}

// Cancel undoes a reservation: the appointment goes away, its dose returns
// to inventory and the caregiver's day opens again. Patients may cancel
// their own appointments, caregivers the ones assigned to them.
func (s *Service) Cancel(ctx context.Context, sess *Session, id int64) (*model.Appointment, error) {
	if !sess.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	var appt *model.Appointment
	err := s.store.InTx(ctx, func(r store.Repo) error {
		a, err := r.AppointmentByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoSuchAppointment
		}
		if err != nil {
			return err
		}

		owner := a.Patient
		if sess.Role() == model.RoleCaregiver {
			owner = a.Caregiver
		}
		if owner != sess.Username() {
			return ErrNotOwner
		}

		if err := r.DeleteAppointment(ctx, a.ID); err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		if err := r.IncreaseDoses(ctx, a.Vaccine, 1); err != nil {
			return fmt.Errorf("return dose: %w", err)
		}
		if err := r.AddAvailability(ctx, a.Date, a.Caregiver); err != nil {
			return fmt.Errorf("restore availability: %w", err)
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("session", sess.ID()).Int64("appointment", appt.ID).Msg("appointment canceled")
	return appt, nil
}

// ShowAppointments lists the logged-in user's appointments by ascending id.
func (s *Service) ShowAppointments(ctx context.Context, sess *Session) ([]model.Appointment, error) {
	switch {
	case !sess.LoggedIn():
		return nil, ErrNotLoggedIn
	case sess.Role() == model.RoleCaregiver:
		return s.store.AppointmentsByCaregiver(ctx, sess.Username())
	default:
		return s.store.AppointmentsByPatient(ctx, sess.Username())
	}
}

// Schedule is what a given day offers: who can vaccinate, and with what.
type Schedule struct {
	Caregivers []string
	Vaccines   []model.Vaccine
}

func (s *Service) SearchSchedule(ctx context.Context, sess *Session, rawDate string) (*Schedule, error) {
	if !sess.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	d, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}

	caregivers, err := s.store.CaregiversOn(ctx, d)
	if err != nil {
		return nil, err
	}
	vaccines, err := s.store.ListVaccines(ctx)
	if err != nil {
		return nil, err
	}
	return &Schedule{Caregivers: caregivers, Vaccines: vaccines}, nil
}
