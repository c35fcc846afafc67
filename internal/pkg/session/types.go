// internal/pkg/session/types.go
package session

import "time"

// SessionData is what gets stored in Redis per applicant session.
type SessionData struct {
	Token          string    `json:"token"`
	ApplicantID    int64     `json:"applicant_id"`
	RegistrantType string    `json:"registrant_type"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
