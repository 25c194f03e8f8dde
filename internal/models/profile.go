package models

import "time"

// Profile is the local account record for one external auth subject.
type Profile struct {
	ID             string    `json:"id"`
	ExternalAuthID string    `json:"user_id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"nombre,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
}

// Identity is what the upstream auth provider tells us about a signed-in user.
// Email and Name may be empty.
type Identity struct {
	Subject string
	Email   string
	Name    string
}
