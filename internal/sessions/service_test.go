package sessions

import (
	"context"
	"testing"
	"time"
)

func TestStartCreatesActiveSession(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	session, err := svc.Start(context.Background(), "user-1", "jane@example.com", "203.0.113.9")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.Status != StatusActive {
		t.Fatalf("expected active session, got %q", session.Status)
	}
	if !session.ExpiresAt.Equal(now.Add(DefaultTTL)) {
		t.Fatalf("expected 24h expiry, got %s", session.ExpiresAt)
	}
	if session.ID == "" {
		t.Fatal("expected generated session ID")
	}
}

func TestValidateExpiresStaleSession(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	session, err := svc.Start(context.Background(), "user-1", "", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.Now = func() time.Time { return now.Add(DefaultTTL + time.Minute) }
	if _, err := svc.Validate(context.Background(), session.ID); err == nil {
		t.Fatal("expected expired session to fail validation")
	}

	stored, err := repo.GetByID(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != StatusExpired {
		t.Fatalf("expected stored status expired, got %q", stored.Status)
	}
}

func TestValidateActiveSession(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	session, err := svc.Start(context.Background(), "user-1", "", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	got, err := svc.Validate(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("expected same session, got %s", got.ID)
	}
}
