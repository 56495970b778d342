package users

import "time"

// UserID identifier type
type UserID string

// User account. PasswordHash never leaves the server.
type User struct {
	ID           UserID    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// PasswordReset is a single-use reset token with a one hour lifetime.
type PasswordReset struct {
	Token     string    `json:"token" bson:"token"`
	UserID    UserID    `json:"user_id" bson:"user_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	Used      bool      `json:"used" bson:"used"`
}
