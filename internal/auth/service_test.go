package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unismart/unismart/internal/models"
	"github.com/unismart/unismart/internal/storage"
)

func newTestService(ttl time.Duration) (*Service, *storage.MemoryRepository) {
	repo := storage.NewMemoryRepository()
	return NewService(repo, NewMemoryStore(), ttl), repo
}

func register(t *testing.T, s *Service) (*models.User, *models.Session) {
	t.Helper()
	ent := 115.0
	user, sess, err := s.Register(context.Background(), models.RegisterRequest{
		Name:     "Aruzhan",
		Email:    "aruzhan@example.kz",
		Password: "secret123",
		ENT:      &ent,
		City:     "Астана",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user, sess
}

func TestRegisterSeedsProfileAndOpensSession(t *testing.T) {
	s, repo := newTestService(0)
	user, sess := register(t, s)

	if user.Email != "aruzhan@example.kz" {
		t.Errorf("email = %q, want normalised lowercase", user.Email)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if sess.Token == "" || sess.UserID != user.ID {
		t.Errorf("bad session: %+v", sess)
	}

	profile, err := repo.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get seeded profile: %v", err)
	}
	if profile.ENTScore != 115 || profile.PreferredCity != "Астана" {
		t.Errorf("seeded profile mismatch: %+v", profile)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _ := newTestService(0)
	register(t, s)

	_, _, err := s.Register(context.Background(), models.RegisterRequest{
		Name:     "Other",
		Email:    "ARUZHAN@example.kz",
		Password: "secret123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	s, _ := newTestService(0)

	if _, _, err := s.Register(context.Background(), models.RegisterRequest{Email: "no-at-sign", Password: "secret123"}); err == nil {
		t.Error("expected error for malformed email")
	}
	if _, _, err := s.Register(context.Background(), models.RegisterRequest{Email: "a@b.kz", Password: "12345"}); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	s, _ := newTestService(0)
	register(t, s)

	user, sess, err := s.Login(context.Background(), models.LoginRequest{
		Email:    "Aruzhan@Example.kz",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Name != "Aruzhan" || sess.Token == "" {
		t.Errorf("login result mismatch: user=%+v session=%+v", user, sess)
	}

	if _, _, err := s.Login(context.Background(), models.LoginRequest{Email: "aruzhan@example.kz", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := s.Login(context.Background(), models.LoginRequest{Email: "nobody@example.kz", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyAndLogout(t *testing.T) {
	s, _ := newTestService(0)
	user, sess := register(t, s)
	ctx := context.Background()

	got, err := s.Verify(ctx, sess.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("verified session belongs to %s, want %s", got.UserID, user.ID)
	}

	if err := s.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.Verify(ctx, sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("revoked token must not verify, got %v", err)
	}

	// Logging out twice is idempotent
	if err := s.Logout(ctx, sess.Token); err != nil {
		t.Errorf("second logout: %v", err)
	}
}

func TestExpiredSessionDoesNotVerify(t *testing.T) {
	s, _ := newTestService(time.Millisecond)
	_, sess := register(t, s)

	time.Sleep(5 * time.Millisecond)

	if _, err := s.Verify(context.Background(), sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired token, got %v", err)
	}
}

func TestHashPasswordIsDeterministic(t *testing.T) {
	a := HashPassword("secret123")
	b := HashPassword("secret123")
	if a != b {
		t.Error("same password must hash identically")
	}
	if a == HashPassword("secret124") {
		t.Error("different passwords must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hex sha-256 digest length = %d, want 64", len(a))
	}
}
