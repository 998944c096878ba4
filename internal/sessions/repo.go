package sessions

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// SessionsRepo defines persistence operations for sessions.
type SessionsRepo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	MarkExpired(ctx context.Context, id string) error
}
