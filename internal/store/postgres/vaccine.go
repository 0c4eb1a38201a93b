package postgres

import (
	"context"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

func (r *repo) VaccineByName(ctx context.Context, name string) (*model.Vaccine, error) {
	v := &model.Vaccine{}
	err := r.q.QueryRow(ctx,
		`SELECT name, doses FROM vaccines WHERE name = $1`, name,
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
	_, err := r.q.Exec(ctx,
		`INSERT INTO vaccines (name, doses) VALUES ($1,$2)`, name, doses,
	)
	return mapErr(err)
}

func (r *repo) IncreaseDoses(ctx context.Context, name string, delta int) error {
	return r.adjustDoses(ctx, name, delta)
}

func (r *repo) DecreaseDoses(ctx context.Context, name string, delta int) error {
	return r.adjustDoses(ctx, name, -delta)
}

// guarded update: keeps doses within [0, model.MaxDoses]
func (r *repo) adjustDoses(ctx context.Context, name string, delta int) error {
	if delta > model.MaxDoses || delta < -model.MaxDoses {
		return r.doseLimitErr(ctx, name, delta)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE vaccines SET doses = doses + $2
		 WHERE name = $1 AND doses::BIGINT + $2 BETWEEN 0 AND $3`,
		name, delta, model.MaxDoses,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	return r.doseLimitErr(ctx, name, delta)
}

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
	rows, err := r.q.Query(ctx, `SELECT name, doses FROM vaccines ORDER BY name COLLATE "C"`)
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
