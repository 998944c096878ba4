package resumes

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateNullsEmptyFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	resume := Resume{
		ID:         "resume-1",
		UserID:     "user-1",
		FileName:   "resume.pdf",
		FileSize:   2048,
		Parsed:     json.RawMessage(`{"name":"Jane"}`),
		Confidence: 0.9,
		Provider:   "openai",
		CreatedAt:  now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			nil, // session_id
			resume.UserID,
			resume.FileName,
			resume.FileSize,
			nil, // raw_text
			[]byte(resume.Parsed),
			resume.Confidence,
			nil, // level
			nil, // job_description
			resume.Provider,
			nil, // processing_mode
			nil, // selection_reason
			nil, // storage_provider
			nil, // storage_key
			resume.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	cols := []string{
		"id", "session_id", "user_id", "file_name", "file_size", "raw_text",
		"parsed", "confidence", "level", "job_description", "provider",
		"processing_mode", "selection_reason", "storage_provider", "storage_key", "created_at",
	}
	mock.ExpectQuery("SELECT id, session_id, user_id").
		WithArgs("resume-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"resume-1", "session-1", "user-1", "resume.pdf", int64(2048), nil,
			[]byte(`{"name":"Jane"}`), 0.9, "senior", nil, "openai",
			"complete_llm", "pdf_direct", "s3", "abc/resume.pdf", now,
		))

	resume, err := repo.GetByID(context.Background(), "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.SessionID != "session-1" || resume.Level != "senior" {
		t.Fatalf("unexpected resume: %+v", resume)
	}
	if string(resume.Parsed) != `{"name":"Jane"}` {
		t.Fatalf("unexpected parsed payload: %s", resume.Parsed)
	}
	if resume.RawText != "" || resume.JobDescription != "" {
		t.Fatalf("expected null columns to stay empty: %+v", resume)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, session_id, user_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
