package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service owns session lifecycle around uploads.
type Service struct {
	Repo SessionsRepo
	Now  func() time.Time
}

// NewService constructs a session service.
func NewService(repo SessionsRepo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Start creates a fresh session bound to a user.
func (s *Service) Start(ctx context.Context, userID, extractedEmail, ipAddress string) (Session, error) {
	now := s.Now().UTC()
	session := Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		ExtractedEmail: extractedEmail,
		IPAddress:      ipAddress,
		Status:         StatusActive,
		CreatedAt:      now,
		ExpiresAt:      now.Add(DefaultTTL),
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Validate returns an active session, lazily expiring stale ones.
func (s *Service) Validate(ctx context.Context, id string) (Session, error) {
	session, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if session.Expired(s.Now().UTC()) {
		if session.Status != StatusExpired {
			_ = s.Repo.MarkExpired(ctx, id)
		}
		return Session{}, fmt.Errorf("session %s expired", id)
	}
	return session, nil
}
