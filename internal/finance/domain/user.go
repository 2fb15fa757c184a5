package domain

import "time"

// UserProfile is the stored profile document for an authenticated user.
type UserProfile struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	CreatedAt   time.Time `json:"createdAt"`
}
