package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("verification token not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotVerified    = errors.New("email not verified")
	ErrUnauthorized       = errors.New("unauthorized")
)

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	ImageURL  *string    `json:"imageUrl,omitempty"`
	Password  *string    `json:"-"`
	Verified  bool       `json:"verified"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// VerificationToken is a single-use secret proving control of an email
// address. At most one active token exists per user: old rows are purged
// before a new one is issued.
type VerificationToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
