package sessions

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements SessionsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new session.
func (r *PGRepo) Create(ctx context.Context, session Session) error {
	const query = `
INSERT INTO sessions (id, user_id, extracted_email, ip_address, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	status := session.Status
	if status == "" {
		status = StatusActive
	}

	var email, ip sql.NullString
	if session.ExtractedEmail != "" {
		email = sql.NullString{String: session.ExtractedEmail, Valid: true}
	}
	if session.IPAddress != "" {
		ip = sql.NullString{String: session.IPAddress, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		email,
		ip,
		status,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

// GetByID returns a session by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Session, error) {
	const query = `
SELECT id, user_id, extracted_email, ip_address, status, created_at, expires_at
FROM sessions
WHERE id = $1`

	var session Session
	var email, ip sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&email,
		&ip,
		&session.Status,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	session.ExtractedEmail = email.String
	session.IPAddress = ip.String
	return session, nil
}

// MarkExpired flags a session as expired.
func (r *PGRepo) MarkExpired(ctx context.Context, id string) error {
	const query = `UPDATE sessions SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, StatusExpired)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ SessionsRepo = (*PGRepo)(nil)
