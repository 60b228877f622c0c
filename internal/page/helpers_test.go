package page_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classboard/internal/api"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newFakeAPIClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(api.Config{
		BaseURL: server.URL + "/api/v1",
		Tokens:  staticTokens("test-token"),
	}, zerolog.New(io.Discard))
	require.NoError(t, err)

	return client
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
