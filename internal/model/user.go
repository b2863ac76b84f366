package model

import "time"

// User is the authentication identity. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is one-to-one with a User and shares its ID.
type Profile struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	AvatarPath *string   `json:"avatar_path"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Phone      *string   `json:"phone"`
	BirthDate  *string   `json:"birth_date"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayName joins first and last name, skipping empty parts.
func (p Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}
