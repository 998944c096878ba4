package users

import "time"

// Verification states for a user identity derived from resume contents.
const (
	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
)

// User represents a candidate identified by the primary email found in
// an uploaded resume.
type User struct {
	ID                 string
	PrimaryEmail       string
	Name               string
	Phone              string
	LinkedIn           string
	VerificationStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
