package postgres

import (
	"context"
	"time"

	"vaccine-scheduler/internal/store"
)

// Caregivers are ordered bytewise so the tie-break does not depend on the
// database locale.

func (r *repo) AddAvailability(ctx context.Context, date time.Time, caregiver string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO availabilities (day, caregiver) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		store.Day(date), caregiver,
	)
	return err
}

func (r *repo) FirstCaregiverOn(ctx context.Context, date time.Time) (string, error) {
	var caregiver string
	err := r.q.QueryRow(ctx,
		`SELECT caregiver FROM availabilities WHERE day = $1
		 ORDER BY caregiver COLLATE "C" LIMIT 1`,
		store.Day(date),
	).Scan(&caregiver)
	if err != nil {
		return "", mapErr(err)
	}
	return caregiver, nil
}

func (r *repo) CaregiversOn(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT caregiver FROM availabilities WHERE day = $1 ORDER BY caregiver COLLATE "C"`,
		store.Day(date),
	)
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
	tag, err := r.q.Exec(ctx,
		`DELETE FROM availabilities WHERE day = $1 AND caregiver = $2`,
		store.Day(date), caregiver,
	)
	if err != nil {
		return err
	}
	return mustAffect(tag)
}
