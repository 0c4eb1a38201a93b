package sqlite

import (
	"context"
	"time"

	"vaccine-scheduler/internal/model"
)

const appointmentCols = `id, patient, caregiver, vaccine, day`

func (r *repo) NextAppointmentID(ctx context.Context) (int64, error) {
	var next int64
	err := r.q.QueryRowContext(ctx,
		`SELECT MAX(
			COALESCE((SELECT MAX(id) FROM appointments), 0),
			COALESCE((SELECT last_value FROM id_counters WHERE name = 'appointments'), 0)
		) + 1`,
	).Scan(&next)
	return next, err
}

func (r *repo) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO appointments (`+appointmentCols+`) VALUES (?,?,?,?,?)`,
		a.ID, a.Patient, a.Caregiver, a.Vaccine, day(a.Date),
	)
	if err != nil {
		return mapErr(err)
	}
	_, err = r.q.ExecContext(ctx,
		`UPDATE id_counters SET last_value = ? WHERE name = 'appointments' AND last_value < ?`,
		a.ID, a.ID,
	)
	return err
}

func (r *repo) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *repo) AppointmentsByPatient(ctx context.Context, username string) ([]model.Appointment, error) {
	return r.listAppointments(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE patient = ? ORDER BY id`, username)
}

func (r *repo) AppointmentsByCaregiver(ctx context.Context, username string) ([]model.Appointment, error) {
	return r.listAppointments(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE caregiver = ? ORDER BY id`, username)
}

func (r *repo) DeleteAppointment(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (r *repo) listAppointments(ctx context.Context, q string, args ...any) ([]model.Appointment, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(s scanner) (*model.Appointment, error) {
	a := &model.Appointment{}
	var d string
	if err := s.Scan(&a.ID, &a.Patient, &a.Caregiver, &a.Vaccine, &d); err != nil {
		return nil, err
	}
	t, err := time.Parse(model.DateLayout, d)
	if err != nil {
		return nil, err
	}
	a.Date = t
	return a, nil
}
