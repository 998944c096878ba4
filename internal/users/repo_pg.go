package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements UsersRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, primary_email, name, phone, linkedin, verification_status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	status := user.VerificationStatus
	if status == "" {
		status = VerificationUnverified
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		nullable(user.PrimaryEmail),
		nullable(user.Name),
		nullable(user.Phone),
		nullable(user.LinkedIn),
		status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetByEmail returns the user with the given primary email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, primary_email, name, phone, linkedin, verification_status, created_at, updated_at
FROM users
WHERE primary_email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// GetByID returns a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `
SELECT id, primary_email, name, phone, linkedin, verification_status, created_at, updated_at
FROM users
WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// UpdateProfile refreshes the mutable profile fields.
func (r *PGRepo) UpdateProfile(ctx context.Context, user User) error {
	const query = `
UPDATE users
SET name = $2, phone = $3, linkedin = $4, updated_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		nullable(user.Name),
		nullable(user.Phone),
		nullable(user.LinkedIn),
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var email, name, phone, linkedin sql.NullString
	err := row.Scan(
		&user.ID,
		&email,
		&name,
		&phone,
		&linkedin,
		&user.VerificationStatus,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.PrimaryEmail = email.String
	user.Name = name.String
	user.Phone = phone.String
	user.LinkedIn = linkedin.String
	return user, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ UsersRepo = (*PGRepo)(nil)
