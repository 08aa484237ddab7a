package models

import (
	"time"
)

// User represents an account in the system. PasswordHash never leaves the
// repository layer in API responses.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Username     string    `json:"username" db:"username"`
	AvatarURL    string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is the public slice of a user attached to articles and comments
type Profile struct {
	ID        string `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	AvatarURL string `json:"avatar_url,omitempty" db:"avatar_url"`
}

// Profile returns the public view of the user.
func (u *User) Profile() *Profile {
	return &Profile{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// ProfilePatch is a partial update to a user's public profile
type ProfilePatch struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}
