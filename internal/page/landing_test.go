package page_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/page"
	"github.com/noah-isme/classboard/internal/session"
)

func authHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses/featured", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Calculus","teacher_id":9,"status":"published"}]`))
	})
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"access_token":"fresh","refresh_token":"rf"}`))
	})
	mux.HandleFunc("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":1,"email":"jane@example.com","first_name":"Jane","last_name":"Doe","role":"teacher"}`))
	})
	return mux
}

func newLanding(t *testing.T, handler http.Handler) (*page.Landing, *session.Manager, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := session.NewStore(t.TempDir(), zerolog.New(io.Discard))
	require.NoError(t, err)
	manager := session.NewManager(store, zerolog.New(io.Discard))

	client, err := api.New(api.Config{BaseURL: server.URL + "/api/v1", Tokens: manager}, zerolog.New(io.Discard))
	require.NoError(t, err)
	manager.UseResolver(client)

	out := &bytes.Buffer{}
	landing := page.NewLanding(client, manager, newValidator(), out, zerolog.New(io.Discard))
	return landing, manager, out
}

func TestLandingRendersFeaturedCourses(t *testing.T) {
	landing, _, out := newLanding(t, authHandler(t))

	require.NoError(t, landing.Open(context.Background()))
	require.Contains(t, out.String(), "Calculus")
}

func TestLandingFetchFailureShowsPageError(t *testing.T) {
	landing, _, out := newLanding(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	require.Error(t, landing.Open(context.Background()))
	require.Contains(t, out.String(), "Failed to load")
}

func TestLoginEstablishesSessionViaWhoami(t *testing.T) {
	landing, manager, _ := newLanding(t, authHandler(t))

	require.NoError(t, landing.Login(context.Background(), "jane@example.com", "correct"))
	require.True(t, manager.Authenticated())
	require.Equal(t, "jane@example.com", manager.User().Email)
	require.Equal(t, "fresh", manager.Token())
}

func TestLoginRejectsBadInputWithoutNetwork(t *testing.T) {
	requests := 0
	landing, manager, _ := newLanding(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	require.Error(t, landing.Login(context.Background(), "not-an-email", "x"))
	require.Contains(t, landing.FormError(), "valid email")
	require.Error(t, landing.Login(context.Background(), "jane@example.com", ""))
	require.Zero(t, requests)
	require.False(t, manager.Authenticated())
}

func TestLoginSurfacesServerDetailInline(t *testing.T) {
	landing, manager, _ := newLanding(t, authHandler(t))

	require.Error(t, landing.Login(context.Background(), "jane@example.com", "wrong"))
	require.Equal(t, "invalid credentials", landing.FormError())
	require.False(t, manager.Authenticated())
}
