package users

import "errors"

var (
	// ErrNotFound indicates no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken indicates a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and bad password so
	// login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidResetToken covers unknown, expired and already-used tokens.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
