package domain

import "time"

// Credential is a locally stored login record. The password hash is an
// argon2id PHC string and never leaves the store layer.
type Credential struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
