package postgres

import (
	"context"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

const appointmentCols = `id, patient, caregiver, vaccine, day`

func (r *repo) NextAppointmentID(ctx context.Context) (int64, error) {
	var next int64
	err := r.q.QueryRow(ctx,
		`SELECT GREATEST(
			COALESCE((SELECT MAX(id) FROM appointments), 0),
			COALESCE((SELECT last_value FROM id_counters WHERE name = 'appointments'), 0)
		) + 1`,
	).Scan(&next)
	return next, err
}

func (r *repo) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO appointments (`+appointmentCols+`) VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.Patient, a.Caregiver, a.Vaccine, store.Day(a.Date),
	)
	if err != nil {
		return mapErr(err)
	}
	_, err = r.q.Exec(ctx,
		`UPDATE id_counters SET last_value = $1 WHERE name = 'appointments' AND last_value < $1`,
		a.ID,
	)
	return err
}

func (r *repo) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := r.q.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Patient, &a.Caregiver, &a.Vaccine, &a.Date)
	if err != nil {
		return nil, mapErr(err)
	}
	a.Date = store.Day(a.Date)
	return a, nil
}

func (r *repo) AppointmentsByPatient(ctx context.Context, username string) ([]model.Appointment, error) {
	return r.listAppointments(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE patient = $1 ORDER BY id`, username)
}

func (r *repo) AppointmentsByCaregiver(ctx context.Context, username string) ([]model.Appointment, error) {
	return r.listAppointments(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE caregiver = $1 ORDER BY id`, username)
}

func (r *repo) DeleteAppointment(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(tag)
}

func (r *repo) listAppointments(ctx context.Context, q string, args ...any) ([]model.Appointment, error) {
	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.Patient, &a.Caregiver, &a.Vaccine, &a.Date); err != nil {
			return nil, err
		}
		a.Date = store.Day(a.Date)
		out = append(out, a)
	}
	return out, rows.Err()
}
