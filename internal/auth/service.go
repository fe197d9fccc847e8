package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cleanbook/internal/admin"
	"cleanbook/internal/api"
	"cleanbook/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = api.ErrUnauthenticated
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*admin.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}

type SessionStore interface {
	Save(ctx context.Context, sessionID string, data session.Data, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (session.Data, error)
	Revoke(ctx context.Context, sessionID string) error
}

// Service verifies admin credentials against per-user bcrypt hashes and manages
// server-side sessions.
type Service struct {
	Users    UserFinder
	Sessions SessionStore
	Tokens   Tokens
	Now      func() time.Time
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Admin     *admin.User `json:"admin"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, admin.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	sessionID := uuid.NewString()
	token, exp, err := s.Tokens.Issue(u, sessionID, now)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sessionID, session.Data{
		AdminID:   u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: now.UTC(),
	}, exp.Sub(now)); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Best effort; a failed timestamp must not block login.
	_ = s.Users.TouchLastLogin(ctx, u.ID)

	return &LoginResult{Token: token, ExpiresAt: exp, Admin: u}, nil
}

// Authenticate validates the token and requires its session to still exist.
func (s *Service) Authenticate(ctx context.Context, token string) (*admin.Principal, error) {
	claims, err := s.Tokens.Verify(token, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	data, err := s.Sessions.Lookup(ctx, claims.ID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if data.AdminID != claims.Subject {
		return nil, fmt.Errorf("%w: session subject mismatch", ErrUnauthenticated)
	}
	return &admin.Principal{
		ID:        data.AdminID,
		Email:     data.Email,
		Name:      data.Name,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *Service) Logout(ctx context.Context, p *admin.Principal) error {
	if p == nil || p.SessionID == "" {
		return nil
	}
	return s.Sessions.Revoke(ctx, p.SessionID)
}
