package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements ResumesRepo using Postgres. Parsed resume content is
// kept in a JSONB column.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume record.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    session_id,
    user_id,
    file_name,
    file_size,
    raw_text,
    parsed,
    confidence,
    level,
    job_description,
    provider,
    processing_mode,
    selection_reason,
    storage_provider,
    storage_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	var parsed any
	if len(resume.Parsed) > 0 {
		parsed = []byte(resume.Parsed)
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		nullable(resume.SessionID),
		nullable(resume.UserID),
		resume.FileName,
		resume.FileSize,
		nullable(resume.RawText),
		parsed,
		resume.Confidence,
		nullable(resume.Level),
		nullable(resume.JobDescription),
		nullable(resume.Provider),
		nullable(resume.ProcessingMode),
		nullable(resume.SelectionReason),
		nullable(resume.StorageProvider),
		nullable(resume.StorageKey),
		resume.CreatedAt,
	)
	return err
}

const selectColumns = `
SELECT id, session_id, user_id, file_name, file_size, raw_text, parsed, confidence, level, job_description, provider, processing_mode, selection_reason, storage_provider, storage_key, created_at
FROM resumes`

// GetByID returns a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByUser returns a user's resumes, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Delete removes a resume record.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var sessionID, userID, rawText, level, jobDescription, provider, mode, reason, storageProvider, storageKey sql.NullString
	var parsed []byte
	err := row.Scan(
		&resume.ID,
		&sessionID,
		&userID,
		&resume.FileName,
		&resume.FileSize,
		&rawText,
		&parsed,
		&resume.Confidence,
		&level,
		&jobDescription,
		&provider,
		&mode,
		&reason,
		&storageProvider,
		&storageKey,
		&resume.CreatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	resume.SessionID = sessionID.String
	resume.UserID = userID.String
	resume.RawText = rawText.String
	resume.Level = level.String
	resume.JobDescription = jobDescription.String
	resume.Provider = provider.String
	resume.ProcessingMode = mode.String
	resume.SelectionReason = reason.String
	resume.StorageProvider = storageProvider.String
	resume.StorageKey = storageKey.String
	if len(parsed) > 0 {
		resume.Parsed = append([]byte(nil), parsed...)
	}
	return resume, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ ResumesRepo = (*PGRepo)(nil)
