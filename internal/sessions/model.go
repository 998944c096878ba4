package sessions

import "time"

// Session statuses.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// DefaultTTL is how long an upload session stays valid.
const DefaultTTL = 24 * time.Hour

// Session ties an upload to a user for a bounded window.
type Session struct {
	ID             string
	UserID         string
	ExtractedEmail string
	IPAddress      string
	Status         string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return s.Status == StatusExpired || now.After(s.ExpiresAt)
}
