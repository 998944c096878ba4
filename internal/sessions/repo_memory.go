package sessions

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of SessionsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Session
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Session)}
}

// Create stores a new session.
func (r *MemoryRepo) Create(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Status == "" {
		session.Status = StatusActive
	}
	r.data[session.ID] = session
	return nil
}

// GetByID returns a session by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.data[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// MarkExpired flags a session as expired.
func (r *MemoryRepo) MarkExpired(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	session.Status = StatusExpired
	r.data[id] = session
	return nil
}

var _ SessionsRepo = (*MemoryRepo)(nil)
