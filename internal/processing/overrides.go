package processing

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultOverrideTTL bounds how long a session keeps a forced provider.
const DefaultOverrideTTL = 24 * time.Hour

// OverrideStore keeps session-scoped forced-provider choices.
type OverrideStore interface {
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Set(ctx context.Context, sessionID, provider string, ttl time.Duration) error
	Clear(ctx context.Context, sessionID string) error
	ClearAll(ctx context.Context) (int, error)
}

type memoryOverride struct {
	provider  string
	expiresAt time.Time
}

// MemoryOverrideStore is the in-process OverrideStore used when Redis is
// not configured.
type MemoryOverrideStore struct {
	mu        sync.Mutex
	overrides map[string]memoryOverride
	now       func() time.Time
}

// NewMemoryOverrideStore creates an empty in-memory override store.
func NewMemoryOverrideStore() *MemoryOverrideStore {
	return &MemoryOverrideStore{
		overrides: make(map[string]memoryOverride),
		now:       time.Now,
	}
}

func (s *MemoryOverrideStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.overrides[sessionID]
	if !ok {
		return "", false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.overrides, sessionID)
		return "", false, nil
	}
	return entry.provider, true, nil
}

func (s *MemoryOverrideStore) Set(ctx context.Context, sessionID, provider string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultOverrideTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[sessionID] = memoryOverride{
		provider:  strings.ToLower(strings.TrimSpace(provider)),
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryOverrideStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, sessionID)
	return nil
}

func (s *MemoryOverrideStore) ClearAll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.overrides)
	s.overrides = make(map[string]memoryOverride)
	return n, nil
}

var _ OverrideStore = (*MemoryOverrideStore)(nil)
