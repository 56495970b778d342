package users

import (
	"context"
	"time"
)

// Repository port for user accounts
type Repository interface {
	Insert(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id UserID) (*User, error)
	UpdatePassword(ctx context.Context, id UserID, passwordHash string) error
}

// ResetRepository port for password reset tokens
type ResetRepository interface {
	Insert(ctx context.Context, r *PasswordReset) error
	// FindValid returns an unused, unexpired token record.
	FindValid(ctx context.Context, token string, now time.Time) (*PasswordReset, error)
	MarkUsed(ctx context.Context, token string) error
}
