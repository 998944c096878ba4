package users

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of UsersRepo.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string // email -> id
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user.
func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.VerificationStatus == "" {
		user.VerificationStatus = VerificationUnverified
	}
	r.byID[user.ID] = user
	if user.PrimaryEmail != "" {
		r.byEmail[strings.ToLower(user.PrimaryEmail)] = user.ID
	}
	return nil
}

// GetByEmail returns the user with the given primary email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// GetByID returns a user by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// UpdateProfile refreshes the mutable profile fields.
func (r *MemoryRepo) UpdateProfile(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = user.Name
	existing.Phone = user.Phone
	existing.LinkedIn = user.LinkedIn
	existing.UpdatedAt = user.UpdatedAt
	r.byID[user.ID] = existing
	return nil
}

var _ UsersRepo = (*MemoryRepo)(nil)
