package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/models"
)

// UserResolver resolves the account behind the current bearer token.
// *api.Client satisfies it.
type UserResolver interface {
	Me(ctx context.Context) (models.User, error)
}

// Manager is the single source of truth for the current session. It is
// used from the single UI goroutine; writes are immediate and
// synchronous.
type Manager struct {
	store    *Store
	resolver UserResolver
	logger   zerolog.Logger

	tokens models.TokenPair
	user   *models.User
}

// NewManager builds a manager over the given store. The resolver is
// attached separately because the API client needs the manager as its
// token source first.
func NewManager(store *Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// UseResolver attaches the whoami dependency.
func (m *Manager) UseResolver(resolver UserResolver) {
	m.resolver = resolver
}

// Token returns the current access token, or "" when anonymous.
func (m *Manager) Token() string {
	return m.tokens.AccessToken
}

// User returns the resolved account, or nil when anonymous.
func (m *Manager) User() *models.User {
	return m.user
}

// Authenticated reports whether a user is resolved.
func (m *Manager) Authenticated() bool {
	return m.user != nil
}

// SetTokens persists the pair and makes it current. The user is not
// touched; callers re-resolve via whoami.
func (m *Manager) SetTokens(pair models.TokenPair) error {
	if err := m.store.Save(pair); err != nil {
		return err
	}
	m.tokens = pair
	return nil
}

// Clear drops the in-memory user and both tokens, memory and disk. It is
// the logout path and the target of the global 401 handler.
func (m *Manager) Clear() {
	m.tokens = models.TokenPair{}
	m.user = nil
	m.store.Clear()
}

// Bootstrap runs the startup sequence: load the stored token and, if one
// exists, validate it against whoami. Any failure clears both tokens and
// leaves the session anonymous without retrying; an expired token will
// surface as 401 and is treated the same as any other failure.
func (m *Manager) Bootstrap(ctx context.Context) {
	pair := m.store.Load()
	if pair.Empty() {
		return
	}
	m.tokens = pair

	if expiry, ok := m.TokenExpiry(); ok {
		m.logger.Debug().Time("expires_at", expiry).Msg("restoring stored session")
	}

	user, err := m.resolver.Me(ctx)
	if err != nil {
		m.logger.Info().Err(err).Msg("stored token rejected, starting anonymous")
		m.Clear()
		return
	}

	m.user = &user
	m.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("session restored")
}

// Establish persists a freshly issued pair and resolves the user behind
// it. The profile always comes from whoami, never from login response
// data. On failure the session is cleared.
func (m *Manager) Establish(ctx context.Context, pair models.TokenPair) error {
	if err := m.SetTokens(pair); err != nil {
		return err
	}

	user, err := m.resolver.Me(ctx)
	if err != nil {
		m.Clear()
		return fmt.Errorf("resolve user: %w", err)
	}

	m.user = &user
	return nil
}

// Logout clears the session synchronously. No server call is involved.
func (m *Manager) Logout() {
	m.Clear()
	m.logger.Info().Msg("logged out")
}

// TokenExpiry decodes the access token without verifying it and reports
// its exp claim. Used for display and logging only; the server remains
// the authority on token validity.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	if m.tokens.Empty() {
		return time.Time{}, false
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(m.tokens.AccessToken, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
