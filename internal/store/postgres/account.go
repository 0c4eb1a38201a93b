package postgres

import (
	"context"

	"vaccine-scheduler/internal/model"
)

func (r *repo) CreateAccount(ctx context.Context, a *model.Account) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO accounts (role, username, salt, hash) VALUES ($1,$2,$3,$4)`,
		string(a.Role), a.Username, a.Salt, a.Hash,
	)
	return mapErr(err)
}

func (r *repo) AccountByUsername(ctx context.Context, role model.Role, username string) (*model.Account, error) {
	a := &model.Account{}
	var rl string
	err := r.q.QueryRow(ctx,
		`SELECT role, username, salt, hash FROM accounts WHERE role = $1 AND username = $2`,
		string(role), username,
	).Scan(&rl, &a.Username, &a.Salt, &a.Hash)
	if err != nil {
		return nil, mapErr(err)
	}
	a.Role = model.Role(rl)
	return a, nil
}
