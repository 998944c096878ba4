package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-checker/internal/shared/telemetry"
)

// Profile carries fields harvested from a parsed resume.
type Profile struct {
	Name     string
	Phone    string
	LinkedIn string
}

// Service owns user lookup and creation keyed by primary email.
type Service struct {
	Repo UsersRepo
	Now  func() time.Time
}

// NewService constructs a user service.
func NewService(repo UsersRepo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// FindOrCreateByEmail resolves the user owning an email, creating one on
// first sight. The second return reports whether the user already existed.
func (s *Service) FindOrCreateByEmail(ctx context.Context, email string, profile Profile) (User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, false, fmt.Errorf("email is required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		s.enrichProfile(ctx, &existing, profile)
		return existing, true, nil
	}
	if err != ErrNotFound {
		return User{}, false, fmt.Errorf("lookup user by email: %w", err)
	}

	now := s.Now().UTC()
	user := User{
		ID:                 uuid.NewString(),
		PrimaryEmail:       email,
		Name:               profile.Name,
		Phone:              profile.Phone,
		LinkedIn:           profile.LinkedIn,
		VerificationStatus: VerificationUnverified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, false, fmt.Errorf("create user: %w", err)
	}
	telemetry.Info("user.created", map[string]any{"user_id": user.ID})
	return user, false, nil
}

// CreateAnonymous creates a user with no primary email. Uploads processed
// straight from the file may not surface a contact address, but the resume
// still needs an owner.
func (s *Service) CreateAnonymous(ctx context.Context, profile Profile) (User, error) {
	now := s.Now().UTC()
	user := User{
		ID:                 uuid.NewString(),
		Name:               profile.Name,
		Phone:              profile.Phone,
		LinkedIn:           profile.LinkedIn,
		VerificationStatus: VerificationUnverified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	telemetry.Info("user.created", map[string]any{"user_id": user.ID, "anonymous": true})
	return user, nil
}

// GetByID returns a user by ID.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.Repo.GetByID(ctx, id)
}

// enrichProfile backfills empty profile fields from the latest resume.
// Failures are logged, not fatal; the upload must not break on them.
func (s *Service) enrichProfile(ctx context.Context, user *User, profile Profile) {
	changed := false
	if user.Name == "" && profile.Name != "" {
		user.Name = profile.Name
		changed = true
	}
	if user.Phone == "" && profile.Phone != "" {
		user.Phone = profile.Phone
		changed = true
	}
	if user.LinkedIn == "" && profile.LinkedIn != "" {
		user.LinkedIn = profile.LinkedIn
		changed = true
	}
	if !changed {
		return
	}
	user.UpdatedAt = s.Now().UTC()
	if err := s.Repo.UpdateProfile(ctx, *user); err != nil {
		telemetry.Warn("user.profile_update_failed", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}
}
