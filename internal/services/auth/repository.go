package auth

import (
	"context"
	"errors"
)

// ErrDuplicateEmail is returned when trying to create a user with an email that already exists
var ErrDuplicateEmail = errors.New("email already registered")

// ErrUserNotFound is returned when no user exists for the given lookup
var ErrUserNotFound = errors.New("user not found")

// UsersRepo defines the interface for user repository operations
type UsersRepo interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListByRole(ctx context.Context, role string) ([]*User, error)
}
