package user

import (
	"context"
	"database/sql"

	"github.com/hanqt132-beep/kost-versi2/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByIdentity(ctx context.Context, identity string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(name, username, contact, password_hash, photo, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		u.Name, u.Username, u.Contact, u.PasswordHash, u.Photo, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

// ByIdentity matches username or contact, case-insensitively.
func (r *repo) ByIdentity(ctx context.Context, identity string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, username, contact, password_hash, photo, role, nik, address, created_at, last_login
		FROM users
		WHERE lower(username) = lower($1)
		OR lower(contact) = lower($1)`,
		identity,
	).Scan(&u.ID, &u.Name, &u.Username, &u.Contact, &u.PasswordHash, &u.Photo, &u.Role,
		&u.NIK, &u.Address, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, username, contact, password_hash, photo, role, nik, address, created_at, last_login
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Username, &u.Contact, &u.PasswordHash, &u.Photo, &u.Role,
		&u.NIK, &u.Address, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET last_login = NOW()
		WHERE id = $1`,
		id,
	)
	return err
}
