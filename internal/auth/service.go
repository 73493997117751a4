// Package auth implements account registration, login and bearer-token
// session management.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unismart/unismart/internal/models"
	"github.com/unismart/unismart/internal/storage"
)

var (
	// ErrInvalidCredentials is returned when email or password do not match
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already used email
	ErrEmailTaken = errors.New("email already registered")
	// ErrWeakPassword is returned for passwords below the minimum length
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// DefaultSessionTTL applies when no SESSION_TTL is configured
const DefaultSessionTTL = 24 * time.Hour

// Service manages accounts and their sessions
type Service struct {
	repo     storage.Repository
	sessions SessionStore
	ttl      time.Duration
}

// NewService creates an auth service. A zero ttl falls back to DefaultSessionTTL.
func NewService(repo storage.Repository, sessions SessionStore, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{repo: repo, sessions: sessions, ttl: ttl}
}

// Register creates an account, seeds its profile from the optional request
// fields and opens a session.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, *models.Session, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("invalid email: %q", req.Email)
	}
	if len(req.Password) < 6 {
		return nil, nil, ErrWeakPassword
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: HashPassword(req.Password),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := models.Profile{PreferredCity: req.City}
	if req.ENT != nil {
		profile.ENTScore = *req.ENT
	}
	if req.IELTS != nil {
		profile.IELTSScore = *req.IELTS
	}
	if req.Budget != nil {
		profile.Budget = *req.Budget
	}
	if err := s.repo.SaveProfile(ctx, user.ID, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to seed profile: %w", err)
	}

	sess, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login authenticates an account and opens a session
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.User, *models.Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if HashPassword(req.Password) != user.PasswordHash {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Logout revokes a session token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, token)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Verify resolves a bearer token to its live session
func (s *Service) Verify(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	return s.sessions.Get(ctx, token)
}

func (s *Service) openSession(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now().UTC()
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// HashPassword returns the hex SHA-256 digest of a password
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
