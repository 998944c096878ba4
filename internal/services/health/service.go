package health

import (
	"context"
	"database/sql"
	"time"

	"ats-checker/internal/llm"
)

// Service encapsulates health-related checks.
type Service struct {
	DB        *sql.DB
	Registry  *llm.Registry
	StoreType string
}

// NewService constructs a new health service.
func NewService(db *sql.DB, registry *llm.Registry, storeType string) *Service {
	return &Service{DB: db, Registry: registry, StoreType: storeType}
}

// Status reports liveness plus the readiness of the main dependencies.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{
		"ok":          true,
		"objectStore": s.StoreType,
	}

	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			out["database"] = "down"
			out["ok"] = false
		} else {
			out["database"] = "up"
		}
	}

	if s.Registry != nil {
		available := s.Registry.Available()
		out["availableProviders"] = available
		if len(available) == 0 {
			out["ok"] = false
		}
	}

	return out
}
