package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	Name                   string    `db:"name" json:"name"`
	Email                  string    `db:"email" json:"email"`
	Phone                  string    `db:"phone" json:"phone"`
	Password               []byte    `db:"password" json:"-"`
	RefreshToken           string    `db:"refresh_token" json:"-"`
	RefreshTokenExpiration time.Time `db:"refresh_token_expiration" json:"-"`
	RegistrationDate       time.Time `db:"registration_date,omitempty" json:"registration_date,omitempty"`
}

// HasSession reports whether the user holds a refresh token that is still
// usable at the given moment.
func (u User) HasSession(now time.Time) bool {
	return u.RefreshToken != "" && u.RefreshTokenExpiration.After(now)
}

// RegisterInput is what the auth workflow needs to create an account.
// Password confirmation is checked before it gets here.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
