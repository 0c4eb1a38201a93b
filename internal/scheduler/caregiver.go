package scheduler

import (
	"context"
	"errors"
	"time"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

// UploadAvailability opens the given day for the logged-in caregiver.
// Uploading the same day twice leaves a single slot.
func (s *Service) UploadAvailability(ctx context.Context, sess *Session, rawDate string) (time.Time, error) {
	caregiver, err := sess.Require(model.RoleCaregiver)
	if err != nil {
		return time.Time{}, err
	}
	d, err := ParseDate(rawDate)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.store.AddAvailability(ctx, d, caregiver); err != nil {
		return time.Time{}, err
	}
	s.log.Debug().Str("session", sess.ID()).Time("date", d).Msg("availability uploaded")
	return d, nil
}

// AddDoses tops up an existing vaccine or creates it with doses. The
// resulting stock may not exceed model.MaxDoses.
func (s *Service) AddDoses(ctx context.Context, sess *Session, vaccine string, doses int) (*model.Vaccine, error) {
	if _, err := sess.Require(model.RoleCaregiver); err != nil {
		return nil, err
	}
	if doses < 0 || doses > model.MaxDoses {
		return nil, ErrInvalidDoses
	}

	var out *model.Vaccine
	err := s.store.InTx(ctx, func(r store.Repo) error {
		v, err := r.VaccineByName(ctx, vaccine)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if err := r.CreateVaccine(ctx, vaccine, doses); err != nil {
				return err
			}
			out = &model.Vaccine{Name: vaccine, Doses: doses}
			return nil
		case err != nil:
			return err
		}
		if err := r.IncreaseDoses(ctx, v.Name, doses); err != nil {
			if errors.Is(err, store.ErrDoseLimit) {
				return ErrInvalidDoses
			}
			return err
		}
		out = &model.Vaccine{Name: v.Name, Doses: v.Doses + doses}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("session", sess.ID()).Str("vaccine", out.Name).Int("doses", out.Doses).Msg("doses updated")
	return out, nil
}
