package session_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classboard/internal/models"
	"github.com/noah-isme/classboard/internal/session"
)

type stubResolver struct {
	user  models.User
	err   error
	calls int
}

func (s *stubResolver) Me(_ context.Context) (models.User, error) {
	s.calls++
	if s.err != nil {
		return models.User{}, s.err
	}
	return s.user, nil
}

func newManager(t *testing.T, resolver session.UserResolver) (*session.Manager, *session.Store) {
	t.Helper()

	store, err := session.NewStore(t.TempDir(), zerolog.New(io.Discard))
	require.NoError(t, err)

	manager := session.NewManager(store, zerolog.New(io.Discard))
	manager.UseResolver(resolver)
	return manager, store
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := session.NewStore(t.TempDir(), zerolog.New(io.Discard))
	require.NoError(t, err)

	require.True(t, store.Load().Empty())

	pair := models.TokenPair{AccessToken: "a", RefreshToken: "r"}
	require.NoError(t, store.Save(pair))
	require.Equal(t, pair, store.Load())

	store.Clear()
	require.True(t, store.Load().Empty())
}

func TestBootstrapWithoutStoredTokenStaysAnonymous(t *testing.T) {
	resolver := &stubResolver{}
	manager, _ := newManager(t, resolver)

	manager.Bootstrap(context.Background())

	require.False(t, manager.Authenticated())
	require.Zero(t, resolver.calls, "whoami must not be called without a token")
}

func TestBootstrapResolvesStoredToken(t *testing.T) {
	resolver := &stubResolver{user: models.User{ID: 1, Email: "jane@example.com", Role: models.RoleTeacher}}
	manager, store := newManager(t, resolver)
	require.NoError(t, store.Save(models.TokenPair{AccessToken: "stored", RefreshToken: "r"}))

	manager.Bootstrap(context.Background())

	require.True(t, manager.Authenticated())
	require.Equal(t, "jane@example.com", manager.User().Email)
	require.Equal(t, "stored", manager.Token())
	require.Equal(t, 1, resolver.calls)
}

func TestBootstrapFailureClearsTokensWithoutRetry(t *testing.T) {
	resolver := &stubResolver{err: errors.New("401")}
	manager, store := newManager(t, resolver)
	require.NoError(t, store.Save(models.TokenPair{AccessToken: "stale", RefreshToken: "r"}))

	manager.Bootstrap(context.Background())

	require.False(t, manager.Authenticated())
	require.Empty(t, manager.Token())
	require.True(t, store.Load().Empty(), "both tokens must be cleared from disk")
	require.Equal(t, 1, resolver.calls, "no retry")
}

func TestEstablishResolvesUserViaWhoami(t *testing.T) {
	resolver := &stubResolver{user: models.User{ID: 2, Email: "t@example.com"}}
	manager, store := newManager(t, resolver)

	pair := models.TokenPair{AccessToken: "fresh", RefreshToken: "rf"}
	require.NoError(t, manager.Establish(context.Background(), pair))

	require.True(t, manager.Authenticated())
	require.Equal(t, pair, store.Load())
	require.Equal(t, 1, resolver.calls)
}

func TestEstablishFailureClearsSession(t *testing.T) {
	resolver := &stubResolver{err: errors.New("boom")}
	manager, store := newManager(t, resolver)

	err := manager.Establish(context.Background(), models.TokenPair{AccessToken: "x"})
	require.Error(t, err)
	require.False(t, manager.Authenticated())
	require.True(t, store.Load().Empty())
}

func TestLogoutClearsEverythingSynchronously(t *testing.T) {
	resolver := &stubResolver{user: models.User{ID: 3}}
	manager, store := newManager(t, resolver)
	require.NoError(t, manager.Establish(context.Background(), models.TokenPair{AccessToken: "x", RefreshToken: "y"}))

	manager.Logout()

	require.False(t, manager.Authenticated())
	require.Empty(t, manager.Token())
	require.True(t, store.Load().Empty())
}

func TestTokenExpiryPeeksUnverifiedClaim(t *testing.T) {
	resolver := &stubResolver{user: models.User{ID: 4}}
	manager, _ := newManager(t, resolver)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "4",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	require.NoError(t, manager.SetTokens(models.TokenPair{AccessToken: signed}))

	got, ok := manager.TokenExpiry()
	require.True(t, ok)
	require.Equal(t, expiry.Unix(), got.Unix())
}

func TestTokenExpiryOnOpaqueToken(t *testing.T) {
	resolver := &stubResolver{}
	manager, _ := newManager(t, resolver)
	require.NoError(t, manager.SetTokens(models.TokenPair{AccessToken: "opaque-token"}))

	_, ok := manager.TokenExpiry()
	require.False(t, ok)
}
