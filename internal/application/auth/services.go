package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Najnomics/business-analysis-ai-V2/internal/application"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// Mailer sends the account emails. Implementations log-and-skip when
// SMTP is not configured.
type Mailer interface {
	SendWelcome(name, email string)
	SendPasswordReset(name, email, token string)
}

// Service implements the auth use-cases: register, login, forgot/reset
// password and bearer-token authentication.
type Service struct {
	Users     users.Repository
	Resets    users.ResetRepository
	Mailer    Mailer // optional
	Clock     application.Clock
	JWTSecret []byte
	TokenTTL  time.Duration // default 7 days
}

// AuthResult pairs the signed token with the authenticated user.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *users.User `json:"user"`
}

// Register creates the account, signs a token and queues the welcome
// email. Duplicate emails fail with ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if existing, err := s.Users.FindByEmail(ctx, email); err != nil && !errors.Is(err, users.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, users.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &users.User{
		ID:           users.UserID(uuid.New().String()),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.Clock.Now().UTC(),
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.signToken(u.ID)
	if err != nil {
		return nil, err
	}

	if s.Mailer != nil {
		go s.Mailer.SendWelcome(u.Name, u.Email)
	}

	return &AuthResult{AccessToken: token, TokenType: "bearer", User: u}, nil
}

// Login verifies the password and signs a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, users.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, users.ErrInvalidCredentials
	}

	token, err := s.signToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, TokenType: "bearer", User: u}, nil
}

// ForgotPassword stores a single-use token and mails the reset link.
// Always succeeds for unknown emails so existence is never revealed.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	reset := &users.PasswordReset{
		Token:     token,
		UserID:    u.ID,
		ExpiresAt: s.Clock.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.Resets.Insert(ctx, reset); err != nil {
		return err
	}

	if s.Mailer != nil {
		go s.Mailer.SendPasswordReset(u.Name, u.Email, token)
	}
	return nil
}

// ResetPassword consumes a valid token and rewrites the password hash.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.Resets.FindValid(ctx, token, s.Clock.Now().UTC())
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		return err
	}
	return s.Resets.MarkUsed(ctx, token)
}

// Authenticate resolves a bearer token to its user. Used by the auth
// middleware on every protected request.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*users.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, users.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, users.ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, users.ErrInvalidCredentials
	}

	u, err := s.Users.FindByID(ctx, users.UserID(sub))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, users.ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) signToken(id users.UserID) (string, error) {
	ttl := s.TokenTTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"sub": string(id),
		"exp": jwt.NewNumericDate(s.Clock.Now().UTC().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// randomToken mirrors a urlsafe 32-byte secret.
func randomToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
