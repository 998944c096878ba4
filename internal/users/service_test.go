package users

import (
	"context"
	"testing"
)

func TestFindOrCreateCreatesNewUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	user, returning, err := svc.FindOrCreateByEmail(context.Background(), "Jane@Example.com", Profile{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	if returning {
		t.Fatal("first sighting should not be a returning user")
	}
	if user.PrimaryEmail != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", user.PrimaryEmail)
	}
	if user.VerificationStatus != VerificationUnverified {
		t.Fatalf("expected unverified status, got %q", user.VerificationStatus)
	}
	if user.ID == "" {
		t.Fatal("expected generated ID")
	}
}

func TestFindOrCreateReturnsExistingUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, _, err := svc.FindOrCreateByEmail(ctx, "jane@example.com", Profile{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, returning, err := svc.FindOrCreateByEmail(ctx, "jane@example.com", Profile{Name: "Jane Doe", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !returning {
		t.Fatal("expected returning user")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same user, got %s and %s", first.ID, second.ID)
	}
	if second.Name != "Jane Doe" || second.Phone != "555-0101" {
		t.Fatalf("expected profile backfill, got %+v", second)
	}

	stored, err := svc.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Jane Doe" {
		t.Fatalf("expected persisted backfill, got %+v", stored)
	}
}

func TestFindOrCreateDoesNotOverwriteProfile(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, _, err := svc.FindOrCreateByEmail(ctx, "jane@example.com", Profile{Name: "Jane A. Doe"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	user, _, err := svc.FindOrCreateByEmail(ctx, "jane@example.com", Profile{Name: "J. Doe"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user.Name != "Jane A. Doe" {
		t.Fatalf("existing name must win, got %q", user.Name)
	}
}

func TestCreateAnonymous(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.CreateAnonymous(ctx, Profile{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("create anonymous: %v", err)
	}
	if user.PrimaryEmail != "" {
		t.Fatalf("expected no email, got %q", user.PrimaryEmail)
	}
	if user.ID == "" || user.Name != "Jane Doe" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.VerificationStatus != VerificationUnverified {
		t.Fatalf("expected unverified status, got %q", user.VerificationStatus)
	}

	second, err := svc.CreateAnonymous(ctx, Profile{})
	if err != nil {
		t.Fatalf("create second anonymous: %v", err)
	}
	if second.ID == user.ID {
		t.Fatal("each anonymous user gets its own identity")
	}
}

func TestFindOrCreateRequiresEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, _, err := svc.FindOrCreateByEmail(context.Background(), "  ", Profile{}); err == nil {
		t.Fatal("expected error for empty email")
	}
}
