package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classboard/internal/api"
)

// staticTokens is a fixed-token TokenSource for tests.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, tokens api.TokenSource, handler http.Handler) (*api.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(api.Config{
		BaseURL: server.URL + "/api/v1",
		Tokens:  tokens,
	}, zerolog.New(io.Discard))
	require.NoError(t, err)

	return client, server
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	_, err := api.New(api.Config{BaseURL: "not a url"}, zerolog.New(io.Discard))
	require.Error(t, err)

	_, err = api.New(api.Config{BaseURL: ""}, zerolog.New(io.Discard))
	require.Error(t, err)
}

func TestRequestCarriesBearerAndCorrelation(t *testing.T) {
	var gotAuth, gotCorrelation string
	client, _ := newTestClient(t, staticTokens("token-abc"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		w.Write([]byte(`{"id":1,"email":"a@b.c","role":"student"}`))
	}))

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer token-abc", gotAuth)
	require.NotEmpty(t, gotCorrelation)
}

func TestAnonymousRequestOmitsBearer(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, staticTokens(""), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	_, err := client.FeaturedCourses(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestErrorUsesServerDetail(t *testing.T) {
	client, _ := newTestClient(t, staticTokens("t"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"title must not be empty"}`))
	}))

	_, err := client.CreateCourse(context.Background(), api.CoursePayload{Title: "x"})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "title must not be empty", apiErr.Detail)
}

func TestErrorFallsBackToGenericDetail(t *testing.T) {
	client, _ := newTestClient(t, staticTokens("t"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))

	_, err := client.FeaturedCourses(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Something went wrong. Please try again.", apiErr.Detail)
}

func TestUnauthorizedFiresGlobalHookFromAnyEndpoint(t *testing.T) {
	client, _ := newTestClient(t, staticTokens("stale"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	}))

	fired := 0
	client.HandleUnauthorized(func() { fired++ })

	_, err := client.Me(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = client.PendingSubmissions(context.Background(), api.FilterSubmitted)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	_, err = client.Comments(context.Background(), 42)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	require.Equal(t, 3, fired)
}

func TestNonUnauthorizedErrorsDoNotMatchSentinel(t *testing.T) {
	client, _ := newTestClient(t, staticTokens("t"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Course(context.Background(), 99)
	require.Error(t, err)
	require.False(t, errors.Is(err, api.ErrUnauthorized))
}

func TestPaginationQueryParameters(t *testing.T) {
	var gotSkip, gotLimit string
	client, _ := newTestClient(t, staticTokens("t"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSkip = r.URL.Query().Get("skip")
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"items":[],"total":0}`))
	}))

	_, err := client.MyCourses(context.Background(), 12, 6)
	require.NoError(t, err)
	require.Equal(t, "12", gotSkip)
	require.Equal(t, "6", gotLimit)
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	var gotContentType, gotUsername string
	client, _ := newTestClient(t, staticTokens(""), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUsername = r.PostForm.Get("username")
		w.Write([]byte(`{"access_token":"a","refresh_token":"r"}`))
	}))

	pair, err := client.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	require.Equal(t, "jane@example.com", gotUsername)
	require.Equal(t, "a", pair.AccessToken)
	require.Equal(t, "r", pair.RefreshToken)
}
