package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yomu-dev/yomu/internal/domain"
	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/repository/rest"
)

// TokenStore persists the token pair between runs.  The config package
// provides the production implementation.
type TokenStore interface {
	Save(access, refresh string) error
	Clear() error
}

// Session tracks the authenticated identity for the lifetime of the process.
// It owns the bearer token on the shared HTTP client: logging in attaches it,
// logging out removes it, and a restored token from a previous run is
// validated before it is trusted.
type Session struct {
	client *rest.Client
	auth   domain.AuthRepository
	store  TokenStore

	user *domain.User
}

func New(client *rest.Client, auth domain.AuthRepository, store TokenStore) *Session {
	return &Session{
		client: client,
		auth:   auth,
		store:  store,
	}
}

// Restore attempts to resume a previous session from a persisted access
// token.  An absent, expired or rejected token degrades silently to the
// logged-out state; browsing works without an account.
func (s *Session) Restore(ctx context.Context, access string) bool {
	if access == "" {
		return false
	}

	if expired(access) {
		log.Info("Stored access token has expired, discarding it")
		s.discard()
		return false
	}

	s.client.SetToken(access)

	user, err := s.auth.Profile(ctx)
	if err != nil {
		log.Warn("Failed to restore session", "error", err)
		s.discard()
		return false
	}

	s.user = user
	log.Info("Restored session", "username", user.Username)
	return true
}

// Login exchanges credentials for a token pair, resolves the profile and
// persists the tokens for the next run.
func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	tokens, err := s.auth.Token(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.client.SetToken(tokens.Access)

	user, err := s.auth.Profile(ctx)
	if err != nil {
		s.client.ClearToken()
		return nil, fmt.Errorf("failed to load profile after login: %w", err)
	}

	if err := s.store.Save(tokens.Access, tokens.Refresh); err != nil {
		log.Warn("Failed to persist tokens", "error", err)
	}

	s.user = user
	log.Info("Logged in", "username", user.Username, "staff", user.IsStaff)
	return user, nil
}

// Register creates an account and immediately logs it in
func (s *Session) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if err := s.auth.Register(ctx, username, email, password); err != nil {
		return nil, err
	}
	return s.Login(ctx, username, password)
}

// Logout drops the in-memory identity and the persisted tokens
func (s *Session) Logout() {
	if s.user != nil {
		log.Info("Logged out", "username", s.user.Username)
	}
	s.user = nil
	s.discard()
}

// User returns the current identity, or nil when logged out
func (s *Session) User() *domain.User {
	return s.user
}

func (s *Session) LoggedIn() bool {
	return s.user != nil
}

func (s *Session) IsStaff() bool {
	return s.user != nil && s.user.IsStaff
}

func (s *Session) discard() {
	s.client.ClearToken()
	if err := s.store.Clear(); err != nil {
		log.Warn("Failed to clear persisted tokens", "error", err)
	}
}

// expired inspects the token's exp claim without verifying the signature.
// Verification is the backend's job; this only avoids a doomed request for a
// token that is already stale.  An unparsable token is treated as expired.
func expired(access string) bool {
	token, _, err := jwt.NewParser().ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		return true
	}

	expiry, err := token.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return true
	}
	return expiry.Before(time.Now())
}
