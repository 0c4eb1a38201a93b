package sqlite

import (
	"context"
	"time"

	"vaccine-scheduler/internal/model"
)

func day(t time.Time) string {
	return t.Format(model.DateLayout)
}

func (r *repo) AddAvailability(ctx context.Context, date time.Time, caregiver string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO availabilities (day, caregiver) VALUES (?,?) ON CONFLICT DO NOTHING`,
		day(date), caregiver,
	)
	return err
}

func (r *repo) FirstCaregiverOn(ctx context.Context, date time.Time) (string, error) {
	var caregiver string
	err := r.q.QueryRowContext(ctx,
		`SELECT caregiver FROM availabilities WHERE day = ? ORDER BY caregiver LIMIT 1`,
		day(date),
	).Scan(&caregiver)
	if err != nil {
		return "", mapErr(err)
	}
	return caregiver, nil
}

func (r *repo) CaregiversOn(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT caregiver FROM availabilities WHERE day = ? ORDER BY caregiver`, day(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) RemoveAvailability(ctx context.Context, date time.Time, caregiver string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM availabilities WHERE day = ? AND caregiver = ?`, day(date), caregiver)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
