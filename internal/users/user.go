package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by repositories when no user matches.
	ErrNotFound = errors.New("no stored user matches")

	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when the authenticated user no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// User is a registered account.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Address      string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository persists users. Create returns ErrEmailTaken when the email
// is already registered.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
