package sqlite

import (
	"context"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

func (r *repo) VaccineByName(ctx context.Context, name string) (*model.Vaccine, error) {
	v := &model.Vaccine{}
	err := r.q.QueryRowContext(ctx,
		`SELECT name, doses FROM vaccines WHERE name = ?`, name,
	).Scan(&v.Name, &v.Doses)
	if err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (r *repo) CreateVaccine(ctx context.Context, name string, doses int) error {
	if doses < 0 {
		return store.ErrInsufficientDoses
	}
	if doses > model.MaxDoses {
		return store.ErrDoseLimit
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO vaccines (name, doses) VALUES (?,?)`, name, doses,
	)
	return mapErr(err)
}

func (r *repo) IncreaseDoses(ctx context.Context, name string, delta int) error {
	return r.adjustDoses(ctx, name, delta)
}

func (r *repo) DecreaseDoses(ctx context.Context, name string, delta int) error {
	return r.adjustDoses(ctx, name, -delta)
}

// adjustDoses applies delta only if the result stays within
// [0, model.MaxDoses]. SQLite turns an overflowing integer sum into a REAL,
// so oversized deltas never reach the query.
func (r *repo) adjustDoses(ctx context.Context, name string, delta int) error {
	if delta > model.MaxDoses || delta < -model.MaxDoses {
		return r.doseLimitErr(ctx, name, delta)
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE vaccines SET doses = doses + ? WHERE name = ? AND doses + ? BETWEEN 0 AND ?`,
		delta, name, delta, model.MaxDoses,
	)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.doseLimitErr(ctx, name, delta)
}

// doseLimitErr explains an update that changed no row.
func (r *repo) doseLimitErr(ctx context.Context, name string, delta int) error {
	if _, err := r.VaccineByName(ctx, name); err != nil {
		return err
	}
	if delta > 0 {
		return store.ErrDoseLimit
	}
	return store.ErrInsufficientDoses
}

func (r *repo) ListVaccines(ctx context.Context) ([]model.Vaccine, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT name, doses FROM vaccines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vaccine
	for rows.Next() {
		var v model.Vaccine
		if err := rows.Scan(&v.Name, &v.Doses); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
