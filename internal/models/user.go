package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user row in the database.
type UserDB struct {
	UserID        uuid.UUID `db:"user_id"`        // Primary key
	Username      string    `db:"username"`       // Unique username
	Email         string    `db:"email"`          // Unique email
	PasswordHash  string    `db:"password_hash"`  // Bcrypt hash, never serialized
	FullName      *string   `db:"full_name"`      // Optional profile fields
	StreetAddress *string   `db:"street_address"` //
	ZipCode       *string   `db:"zip_code"`       //
	City          *string   `db:"city"`           //
	Country       *string   `db:"country"`        //
	CreatedAt     time.Time `db:"created_at"`     // Creation timestamp
	UpdatedAt     time.Time `db:"updated_at"`     // Last update timestamp
}

// UserRead is the public view of a user, excluding credentials.
type UserRead struct {
	UserID        uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      *string   `json:"full_name,omitempty"`
	StreetAddress *string   `json:"street_address,omitempty"`
	ZipCode       *string   `json:"zip_code,omitempty"`
	City          *string   `json:"city,omitempty"`
	Country       *string   `json:"country,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewUserRead builds the public view of a user row.
func NewUserRead(u *UserDB) UserRead {
	return UserRead{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		StreetAddress: u.StreetAddress,
		ZipCode:       u.ZipCode,
		City:          u.City,
		Country:       u.Country,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// RegisterUser carries the data needed to create a new user.
type RegisterUser struct {
	Username      string
	Email         string
	Password      string
	FullName      *string
	StreetAddress *string
	ZipCode       *string
	City          *string
	Country       *string
}

// ProfileUpdate is a partial patch of the mutable profile fields.
// Nil fields keep their prior value.
type ProfileUpdate struct {
	FullName      *string
	StreetAddress *string
	ZipCode       *string
	City          *string
	Country       *string
}
