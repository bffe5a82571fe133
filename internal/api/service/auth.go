package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/store"
	"github.com/taskden/taskden/pkg/cryptox"
	"github.com/taskden/taskden/pkg/idx"
	"github.com/taskden/taskden/pkg/jwtx"
	"github.com/taskden/taskden/pkg/slogx"
)

var (
	ErrMissingCredentials = errors.New("missing_credentials")
	ErrUserExists         = errors.New("user_already_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

// Register creates a new user and issues a session token for it. Username
// and email are each globally unique; a collision on either blocks creation.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return domain.User{}, "", ErrMissingCredentials
	}

	// Hash before opening the transaction; bcrypt is the slow part.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	// Check-then-create runs in one transaction. The unique constraints
	// remain the backstop for writers racing outside it.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		exists, err := tx.Users().ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return fmt.Errorf("check existing user: %w", err)
		}
		if exists {
			return ErrUserExists
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserExists
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, token, nil
}

// Login verifies credentials and issues a session token. The identifier may
// be a username or an email; at least one must be present.
func (s *AuthService) Login(ctx context.Context, username, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if password == "" || (username == "" && email == "") {
		return "", ErrMissingCredentials
	}

	user, err := s.Store.Users().GetUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login rejected", slog.String("user_id", user.ID))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, nil
}

// GetUserByID resolves a user record for identity purposes. Session
// middleware uses this to re-fetch the user behind a verified token rather
// than trusting the embedded claim.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(user.ID, user.Username, s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}
